package entities

type NotificationChannel string

const (
	NotifyUser NotificationChannel = "user"
	NotifyRole NotificationChannel = "role"
)

// Notification is one fan-out delivery produced from a domain event. Recipient
// is a user id or a role name depending on the channel.
type Notification struct {
	Channel   NotificationChannel
	Recipient string
	Type      string
	Title     string
	Message   string
	Data      map[string]any
}

// PlaceholderName stands in for a display name the directory could not
// resolve in time.
const PlaceholderName = "Unknown"

// Contact is what the user directory knows about a party.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// EmailMessage is the email sibling of a push notification. The engine only
// sends it when the triggering event already carries the address.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}
