package response

import "net/http"

// Msg is the body of every non-data response.
type Msg struct {
	Message string `json:"message"`
}

func Message(msg string) Msg { return Msg{Message: msg} }

// Error builds an error body; an empty customMsg falls back to the status
// default.
func Error(status int, customMsg string) Msg {
	msg := customMsg
	if msg == "" {
		msg = StatusMsgMap[status]
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return Msg{Message: msg}
}

type ProjectCreated struct {
	Message   string `json:"message"`
	ProjectID int64  `json:"projectId"`
}

type ProjectUpdated struct {
	Message        string `json:"message"`
	UpdatedProject any    `json:"updatedProject"`
}
