package models

// Attendance is the choice a guest makes on the RSVP form.
type Attendance string

const (
	AttendanceAttending    Attendance = "attending"
	AttendanceNotAttending Attendance = "not-attending"
)

// GuestStatus maps the attendance choice to the guest status it produces.
func (a Attendance) GuestStatus() (GuestStatus, bool) {
	switch a {
	case AttendanceAttending:
		return GuestStatusConfirmed, true
	case AttendanceNotAttending:
		return GuestStatusDeclined, true
	}
	return "", false
}
