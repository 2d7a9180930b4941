package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gifts_buyer/internal/config"
	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/internal/infrastructure/notifier"
	"gifts_buyer/internal/infrastructure/persistence"
	"gifts_buyer/pkg/application/connectors"
)

type peerTextSenderMock struct {
	sent []entity.PeerRef
}

func (m *peerTextSenderMock) SendText(_ context.Context, to entity.PeerRef, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

func TestNewTextSender(t *testing.T) {
	rq := require.New(t)

	client := &peerTextSenderMock{}

	rq.Nil(newTextSender(config.Notifications{}, client, nil))
	rq.Nil(newTextSender(config.Notifications{ChannelID: "-100"}, client, nil))

	sender := newTextSender(config.Notifications{ChannelID: "@news"}, client, nil)
	rq.IsType(&notifier.AccountChannel{}, sender)

	rq.NoError(sender.SendText(context.Background(), "hi"))
	rq.Equal([]entity.PeerRef{{Username: "news"}}, client.sent)
}

func TestNewSnapshotStoreFile(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "history.json")

	store, err := newSnapshotStore(context.Background(), config.Storage{
		Backend:     config.BackendFile,
		HistoryPath: path,
	}, &connectors.Redis{})
	rq.NoError(err)
	rq.IsType(&persistence.FileSnapshotStore{}, store)

	size, err := store.Size(context.Background())
	rq.NoError(err)
	rq.Zero(size)
}

func TestAnnounceOnce(t *testing.T) {
	rq := require.New(t)

	calls := 0
	start := announceOnce(func(context.Context) error {
		calls++
		return nil
	})

	for range 3 {
		rq.NoError(start(context.Background()))
	}

	rq.Equal(1, calls)
}
