package graph

import "time"

// AccessToken is a cached service-to-service credential for the platform API.
type AccessToken struct {
	Value  string
	Expiry time.Time
}

// valid reports whether the token is usable at instant now, applying a skew
// so a token about to expire is not handed to an outbound request.
func (t AccessToken) valid(now time.Time, skew time.Duration) bool {
	return t.Value != "" && (t.Expiry.IsZero() || t.Expiry.After(now.Add(skew)))
}

// JoinStatus is the outcome of a call-join request.
type JoinStatus string

const (
	JoinStatusJoined   JoinStatus = "joined"
	JoinStatusRejected JoinStatus = "rejected"
)

// JoinResult reports the platform's answer to a join request.
type JoinResult struct {
	Status         JoinStatus
	PlatformCallID string
}

// callRequest is the platform call-creation payload: the bot identity, the
// callback URI for asynchronous events, and the requested media modalities.
type callRequest struct {
	Source              identitySource `json:"source"`
	CallbackURI         string         `json:"callbackUri"`
	RequestedModalities []string       `json:"requestedModalities"`
	MediaConfig         mediaConfig    `json:"mediaConfig"`
}

type identitySource struct {
	Identity identitySet `json:"identity"`
}

type identitySet struct {
	Application appIdentity `json:"application"`
}

type appIdentity struct {
	DisplayName string `json:"displayName"`
	ID          string `json:"id"`
}

type mediaConfig struct {
	ODataType string `json:"@odata.type"`
}

// callResponse is the subset of the platform's call resource we care about.
type callResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

func newCallRequest(displayName, appID, callbackURL string) callRequest {
	return callRequest{
		Source: identitySource{
			Identity: identitySet{
				Application: appIdentity{DisplayName: displayName, ID: appID},
			},
		},
		CallbackURI:         callbackURL,
		RequestedModalities: []string{"audio"},
		MediaConfig:         mediaConfig{ODataType: "#microsoft.graph.serviceHostedMediaConfig"},
	}
}
