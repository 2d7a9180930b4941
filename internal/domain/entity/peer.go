package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// PeerRef identifies a recipient or a channel either by numeric id or by
// public username. Exactly one of the fields is set.
type PeerRef struct {
	ID       int64
	Username string `validate:"required_without=ID"`
}

// ParsePeerRef accepts "@name", a bare name or a numeric id.
func ParsePeerRef(raw string) (PeerRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PeerRef{}, fmt.Errorf("empty peer")
	}

	if strings.HasPrefix(raw, "@") {
		name := strings.TrimPrefix(raw, "@")
		if name == "" {
			return PeerRef{}, fmt.Errorf("empty username in %q", raw)
		}

		return PeerRef{Username: name}, nil
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return PeerRef{ID: id}, nil
	}

	return PeerRef{Username: raw}, nil
}

func (p PeerRef) IsUsername() bool {
	return p.Username != ""
}

func (p PeerRef) IsZero() bool {
	return p.ID == 0 && p.Username == ""
}

func (p PeerRef) String() string {
	if p.IsUsername() {
		return "@" + p.Username
	}

	return strconv.FormatInt(p.ID, 10)
}

// ChatInfo is what the platform knows about a peer.
type ChatInfo struct {
	ID          int64
	Username    string
	DisplayName string
}
