package telegram

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"gifts_buyer/internal/config"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ConsoleInput asks for the login code on the terminal.
type ConsoleInput struct {
	In  io.Reader
	Out io.Writer
}

func (c ConsoleInput) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	fmt.Fprint(c.Out, "Enter the code sent by Telegram: ")

	text, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read code: %w", err)
	}

	return strings.TrimSpace(text), nil
}

type Client struct {
	client   *telegram.Client
	api      *tg.Client
	sender   *message.Sender
	peers    *peerCache
	phone    string
	password string
	codes    auth.CodeAuthenticator

	ready     chan struct{}
	readyOnce sync.Once
}

// NewClient builds a user-account client backed by a file session.
// A nil log disables gotd's internal logging.
func NewClient(cfg config.Telegram, log *zap.Logger) (*Client, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SessionPath), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	client := telegram.NewClient(cfg.APIID, cfg.APIHash, telegram.Options{
		SessionStorage: &telegram.FileSessionStorage{Path: cfg.SessionPath},
		Logger:         log,
	})

	api := client.API()

	return &Client{
		client:   client,
		api:      api,
		sender:   message.NewSender(api),
		peers:    newPeerCache(),
		phone:    cfg.Phone,
		password: cfg.Password,
		codes:    ConsoleInput{In: os.Stdin, Out: os.Stdout},
		ready:    make(chan struct{}),
	}, nil
}

// Start connects, logs in when the session is not authorized and keeps
// the connection open until ctx is done.
func (c *Client) Start(ctx context.Context, onReady func(ctx context.Context) error) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("auth status: %w", err)
		}

		if !status.Authorized {
			logger(ctx).Info("session not authorized, starting login flow")

			if err := c.authenticate(ctx); err != nil {
				return fmt.Errorf("authenticate: %w", err)
			}

			logger(ctx).Info("login successful")
		}

		if err := c.peers.warmUp(ctx, c.api); err != nil {
			logger(ctx).Warn("failed to warm up peer cache", logx.Error(err))
		}

		c.readyOnce.Do(func() { close(c.ready) })

		if onReady != nil {
			if err := onReady(ctx); err != nil {
				return err
			}
		}

		<-ctx.Done()
		return ctx.Err()
	})
}

// WaitReady blocks until the client is logged in.
func (c *Client) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnsureConnected checks the connection with a ping round trip.
func (c *Client) EnsureConnected(ctx context.Context) error {
	if err := c.WaitReady(ctx); err != nil {
		return err
	}

	if err := c.client.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	return nil
}

func (c *Client) authenticate(ctx context.Context) error {
	flow := auth.NewFlow(
		auth.Constant(c.phone, c.password, c.codes),
		auth.SendCodeOptions{},
	)

	return c.client.Auth().IfNecessary(ctx, flow)
}
