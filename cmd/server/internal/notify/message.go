package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Message is one outbound summary notification.
type Message struct {
	Recipient string
	Subject   string
	HTMLBody  string
}

// summaryEmail feeds the HTML body template.
type summaryEmail struct {
	MeetingID    string
	Date         string
	Participants string
	Summary      string
	Transcript   string
}

const summaryBodyTemplate = `<h2>Teams Call Summary</h2>
<p><strong>Meeting ID:</strong> {{.MeetingID}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p><strong>Participants:</strong> {{.Participants}}</p>
<h3>Summary:</h3>
<p>{{.Summary}}</p>
<h3>Full Transcript:</h3>
<p>{{.Transcript}}</p>
`

var bodyTmpl = template.Must(template.New("summary").Parse(summaryBodyTemplate))

// BuildSummaryMessage renders the deterministic notification for one call:
// fixed header, meeting id, the send-time timestamp, participants in
// insertion order, then summary and full transcript.
func BuildSummaryMessage(recipient, meetingID, summary string, participants []string, transcript string, sentAt time.Time) (Message, error) {
	if strings.TrimSpace(recipient) == "" {
		return Message{}, ErrNoRecipient
	}
	if meetingID == "" {
		meetingID = "N/A"
	}

	var body strings.Builder
	err := bodyTmpl.Execute(&body, summaryEmail{
		MeetingID:    meetingID,
		Date:         sentAt.Format("2006-01-02 15:04"),
		Participants: strings.Join(participants, ", "),
		Summary:      summary,
		Transcript:   transcript,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render summary body: %w", err)
	}

	return Message{
		Recipient: recipient,
		Subject:   fmt.Sprintf("Call Summary - %s", meetingID),
		HTMLBody:  body.String(),
	}, nil
}
