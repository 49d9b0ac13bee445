package models

// ScheduleRequest is the payload sent to the external calendar bridge when
// booking a counseling session. DateTime is ISO-8601 (RFC 3339) in UTC; the
// bridge books a one-hour slot starting at that time.
type ScheduleRequest struct {
	CounselorName  string `json:"counselorName"`
	CounselorEmail string `json:"counselorEmail"`
	PatientName    string `json:"patientName"`
	PatientEmail   string `json:"patientEmail"`
	DateTime       string `json:"dateTime"`
}

// ScheduleResponse is the calendar bridge's reply. On success MeetLink holds
// the join URL for the created meeting.
type ScheduleResponse struct {
	Success  bool   `json:"success"`
	MeetLink string `json:"meetLink,omitempty"`
	EventID  string `json:"eventId,omitempty"`
	Error    string `json:"error,omitempty"`
}
