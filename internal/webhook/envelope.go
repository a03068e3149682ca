package webhook

import (
	"encoding/json"

	"github.com/roach88/recipebot/internal/dialog"
)

// DefaultVersion is echoed when the request carries no protocol version.
const DefaultVersion = "1.0"

// Request is the incoming turn envelope.
type Request struct {
	Version string          `json:"version"`
	Session json.RawMessage `json:"session"`
	Request RequestBody     `json:"request"`
}

// RequestBody carries what the user said.
type RequestBody struct {
	OriginalUtterance string `json:"original_utterance"`
	Command           string `json:"command"`
}

// Session is the part of the session object the adapter reads.
// The raw session is echoed back unchanged.
type Session struct {
	New    bool   `json:"new"`
	UserID string `json:"user_id"`
	User   *struct {
		UserID string `json:"user_id"`
	} `json:"user,omitempty"`
}

// Response is the outgoing reply envelope.
type Response struct {
	Version  string          `json:"version"`
	Session  json.RawMessage `json:"session,omitempty"`
	Response ResponseBody    `json:"response"`
}

// ResponseBody is the reply shown or spoken to the user.
type ResponseBody struct {
	Text       string   `json:"text"`
	Buttons    []Button `json:"buttons,omitempty"`
	EndSession bool     `json:"end_session"`
}

// Button is a suggestion chip.
type Button struct {
	Title string `json:"title"`
	Hide  bool   `json:"hide"`
}

// toTurn extracts the turn from a decoded request.
func toTurn(req Request, sess Session) dialog.Turn {
	userID := sess.UserID
	if userID == "" && sess.User != nil {
		userID = sess.User.UserID
	}
	utterance := req.Request.OriginalUtterance
	if utterance == "" {
		utterance = req.Request.Command
	}
	return dialog.Turn{
		NewSession: sess.New,
		UserID:     userID,
		Utterance:  utterance,
	}
}

// fromReply wraps a reply in the response envelope.
func fromReply(req Request, reply dialog.Reply) Response {
	version := req.Version
	if version == "" {
		version = DefaultVersion
	}

	buttons := make([]Button, len(reply.Suggestions))
	for i, s := range reply.Suggestions {
		buttons[i] = Button{Title: s.Label, Hide: s.Hidden}
	}

	return Response{
		Version: version,
		Session: req.Session,
		Response: ResponseBody{
			Text:       reply.Text,
			Buttons:    buttons,
			EndSession: reply.EndSession,
		},
	}
}
