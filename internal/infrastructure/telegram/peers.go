package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gotd/td/tg"
	"github.com/patrickmn/go-cache"

	"gifts_buyer/internal/domain"
	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/errcodes"
)

const (
	peerTTL          = 6 * time.Hour
	peerCleanup      = 30 * time.Minute
	dialogsPageLimit = 100

	// channelIDShift converts a Bot API style "-100..." id into a channel id.
	channelIDShift = 1_000_000_000_000
)

type peerKind int

const (
	kindUser peerKind = iota
	kindChat
	kindChannel
)

type peerKey struct {
	kind peerKind
	id   int64
}

// keyFromID maps a configured numeric id to the platform entity it names:
// positive ids are users, "-100..." ids are channels, other negatives are
// basic groups.
func keyFromID(id int64) peerKey {
	switch {
	case id <= -channelIDShift:
		return peerKey{kind: kindChannel, id: -id - channelIDShift}
	case id < 0:
		return peerKey{kind: kindChat, id: -id}
	default:
		return peerKey{kind: kindUser, id: id}
	}
}

func (k peerKey) String() string {
	return strconv.Itoa(int(k.kind)) + ":" + strconv.FormatInt(k.id, 10)
}

type peerEntry struct {
	input tg.InputPeerClass
	info  entity.ChatInfo
}

// peerCache remembers access hashes seen in dialogs, contacts and username
// lookups. Ids cannot be addressed without them.
type peerCache struct {
	byID       *cache.Cache
	byUsername *cache.Cache
}

func newPeerCache() *peerCache {
	return &peerCache{
		byID:       cache.New(peerTTL, peerCleanup),
		byUsername: cache.New(peerTTL, peerCleanup),
	}
}

func (p *peerCache) lookupID(id int64) (peerEntry, bool) {
	v, ok := p.byID.Get(keyFromID(id).String())
	if !ok {
		return peerEntry{}, false
	}

	return v.(peerEntry), true //nolint:forcetypeassert
}

func (p *peerCache) lookupUsername(name string) (peerEntry, bool) {
	v, ok := p.byUsername.Get(strings.ToLower(name))
	if !ok {
		return peerEntry{}, false
	}

	return v.(peerEntry), true //nolint:forcetypeassert
}

func (p *peerCache) put(key peerKey, entry peerEntry) {
	p.byID.Set(key.String(), entry, cache.DefaultExpiration)

	if entry.info.Username != "" {
		p.byUsername.Set(strings.ToLower(entry.info.Username), entry, cache.DefaultExpiration)
	}
}

func (p *peerCache) addUsers(users []tg.UserClass) {
	for _, raw := range users {
		u, ok := raw.(*tg.User)
		if !ok {
			continue
		}

		p.put(peerKey{kind: kindUser, id: u.ID}, peerEntry{
			input: &tg.InputPeerUser{UserID: u.ID, AccessHash: u.AccessHash},
			info: entity.ChatInfo{
				ID:          u.ID,
				Username:    u.Username,
				DisplayName: strings.TrimSpace(u.FirstName + " " + u.LastName),
			},
		})
	}
}

func (p *peerCache) addChats(chats []tg.ChatClass) {
	for _, raw := range chats {
		switch c := raw.(type) {
		case *tg.Chat:
			p.put(peerKey{kind: kindChat, id: c.ID}, peerEntry{
				input: &tg.InputPeerChat{ChatID: c.ID},
				info:  entity.ChatInfo{ID: -c.ID, DisplayName: c.Title},
			})
		case *tg.Channel:
			p.put(peerKey{kind: kindChannel, id: c.ID}, peerEntry{
				input: &tg.InputPeerChannel{ChannelID: c.ID, AccessHash: c.AccessHash},
				info:  entity.ChatInfo{ID: -channelIDShift - c.ID, Username: c.Username, DisplayName: c.Title},
			})
		}
	}
}

// warmUp loads the first dialogs page and the contact list.
func (p *peerCache) warmUp(ctx context.Context, api *tg.Client) error {
	dialogs, err := api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
		OffsetPeer: &tg.InputPeerEmpty{},
		Limit:      dialogsPageLimit,
	})
	if err != nil {
		return fmt.Errorf("messages.getDialogs: %w", err)
	}

	switch d := dialogs.(type) {
	case *tg.MessagesDialogs:
		p.addUsers(d.Users)
		p.addChats(d.Chats)
	case *tg.MessagesDialogsSlice:
		p.addUsers(d.Users)
		p.addChats(d.Chats)
	}

	contacts, err := api.ContactsGetContacts(ctx, 0)
	if err != nil {
		return fmt.Errorf("contacts.getContacts: %w", err)
	}

	if c, ok := contacts.(*tg.ContactsContacts); ok {
		p.addUsers(c.Users)
	}

	return nil
}

func (c *Client) lookup(ctx context.Context, ref entity.PeerRef) (peerEntry, error) {
	if ref.IsUsername() {
		if entry, ok := c.peers.lookupUsername(ref.Username); ok {
			return entry, nil
		}

		return c.resolveUsername(ctx, ref.Username)
	}

	if entry, ok := c.peers.lookupID(ref.ID); ok {
		return entry, nil
	}

	if err := c.peers.warmUp(ctx, c.api); err != nil {
		return peerEntry{}, domain.WrapError(err, errcodes.PeerNotResolved, "refresh peers for "+ref.String())
	}

	if entry, ok := c.peers.lookupID(ref.ID); ok {
		return entry, nil
	}

	return peerEntry{}, domain.NewError(errcodes.PeerNotResolved, "unknown peer "+ref.String())
}

func (c *Client) resolveUsername(ctx context.Context, name string) (peerEntry, error) {
	res, err := c.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: name})
	if err != nil {
		return peerEntry{}, fmt.Errorf("contacts.resolveUsername: %w", err)
	}

	c.peers.addUsers(res.Users)
	c.peers.addChats(res.Chats)

	var key peerKey
	switch p := res.Peer.(type) {
	case *tg.PeerUser:
		key = peerKey{kind: kindUser, id: p.UserID}
	case *tg.PeerChannel:
		key = peerKey{kind: kindChannel, id: p.ChannelID}
	case *tg.PeerChat:
		key = peerKey{kind: kindChat, id: p.ChatID}
	default:
		return peerEntry{}, domain.NewError(errcodes.PeerNotResolved, "unexpected peer for @"+name)
	}

	v, ok := c.peers.byID.Get(key.String())
	if !ok {
		return peerEntry{}, domain.NewError(errcodes.PeerNotResolved, "no access hash for @"+name)
	}

	return v.(peerEntry), nil //nolint:forcetypeassert
}

func (c *Client) resolve(ctx context.Context, ref entity.PeerRef) (tg.InputPeerClass, error) {
	entry, err := c.lookup(ctx, ref)
	if err != nil {
		return nil, err
	}

	return entry.input, nil
}

// ChatInfo returns what is known about a peer.
func (c *Client) ChatInfo(ctx context.Context, ref entity.PeerRef) (entity.ChatInfo, error) {
	entry, err := c.lookup(ctx, ref)
	if err != nil {
		return entity.ChatInfo{}, err
	}

	return entry.info, nil
}
