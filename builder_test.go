package clientcore

import (
	"context"
	"testing"
	"time"

	"github.com/hirewire/clientcore/kv"
	"github.com/hirewire/clientcore/notify"
	"github.com/hirewire/clientcore/session"
)

func TestBuildRequiresVerifier(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("Build without a verifier must fail")
	}
}

func TestBuildRejectsReuse(t *testing.T) {
	builder := New().WithVerifier(StaticVerifier{})

	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := builder.Build(); err == nil {
		t.Fatal("second Build on the same builder must fail")
	}
}

func TestBuildValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name: "signed encoding without key",
			mutate: func(c *Config) {
				c.Session.Encoding = EncodingSigned
			},
		},
		{
			name: "unknown encoding",
			mutate: func(c *Config) {
				c.Session.Encoding = "base85"
			},
		},
		{
			name: "negative capacity",
			mutate: func(c *Config) {
				c.Notifications.Capacity = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			_, err := New().WithConfig(cfg).WithVerifier(StaticVerifier{}).Build()
			if err == nil {
				t.Fatal("expected Build to reject config")
			}
		})
	}
}

func TestBuildSignedEncodingPersistsTokens(t *testing.T) {
	storage := kv.NewMemory()
	ctx := context.Background()

	cfg := defaultConfig()
	cfg.Session.Encoding = EncodingSigned
	cfg.Session.SigningKey = []byte("0123456789abcdef0123456789abcdef")

	engine, err := New().
		WithConfig(cfg).
		WithStorage(storage).
		WithVerifier(StaticVerifier{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	engine.Restore(ctx)
	if _, err := engine.Login(ctx, "a@b.c", "pw", session.RoleSeeker); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	data, err := storage.Get(ctx, session.DefaultStorageKey)
	if err != nil {
		t.Fatalf("persisted record missing: %v", err)
	}
	codec, err := session.NewSignedCodec(cfg.Session.SigningKey)
	if err != nil {
		t.Fatalf("NewSignedCodec failed: %v", err)
	}
	if _, err := codec.Decode(data); err != nil {
		t.Fatalf("persisted record does not verify: %v", err)
	}
}

func TestBuildCustomStorageKey(t *testing.T) {
	storage := kv.NewMemory()
	ctx := context.Background()

	cfg := defaultConfig()
	cfg.Session.StorageKey = "custom:slot"

	engine, err := New().
		WithConfig(cfg).
		WithStorage(storage).
		WithVerifier(StaticVerifier{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	engine.Restore(ctx)
	if _, err := engine.Login(ctx, "a@b.c", "pw", session.RoleSeeker); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := storage.Get(ctx, "custom:slot"); err != nil {
		t.Fatalf("record not under configured key: %v", err)
	}
}

func waitForNotifications(t *testing.T, queue *notify.Queue, want int) []notify.Item {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		items := queue.Items()
		if len(items) >= want {
			return items
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d notifications, have %d", want, len(items))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBuildSurfacesOutcomesAsNotifications(t *testing.T) {
	queue := notify.NewQueue(notify.Config{})
	defer queue.Close()
	ctx := context.Background()

	engine, err := New().
		WithVerifier(StaticVerifier{}).
		WithNotifications(queue).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	engine.Restore(ctx)
	if _, err := engine.Login(ctx, "a@b.c", "pw", session.RoleSeeker); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	items := waitForNotifications(t, queue, 2)
	// Most recent first: logout, then login.
	if items[0].Payload.Title != "You've been logged out successfully." {
		t.Fatalf("head = %q", items[0].Payload.Title)
	}
	if items[1].Payload.Title != "Login successful!" {
		t.Fatalf("tail = %q", items[1].Payload.Title)
	}
}

func TestBuildFansOutToSinkAndQueue(t *testing.T) {
	queue := notify.NewQueue(notify.Config{})
	defer queue.Close()
	sink := NewChannelSink(8)
	ctx := context.Background()

	engine, err := New().
		WithVerifier(StaticVerifier{}).
		WithEventSink(sink).
		WithNotifications(queue).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	engine.Restore(ctx)
	if _, err := engine.Login(ctx, "a@b.c", "pw", session.RoleSeeker); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	waitForNotifications(t, queue, 1)

	var sawLogin bool
	timeout := time.After(2 * time.Second)
	for !sawLogin {
		select {
		case event := <-sink.Events():
			if event.EventType == "login_success" {
				sawLogin = true
			}
		case <-timeout:
			t.Fatal("login event never reached the sink")
		}
	}
}

func TestBuildConstructsOwnedQueue(t *testing.T) {
	engine, err := New().WithVerifier(StaticVerifier{}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	queue := engine.Notifications()
	if queue == nil {
		t.Fatal("surfacing on without a supplied queue must construct one")
	}

	ctx := context.Background()
	engine.Restore(ctx)
	if _, err := engine.Login(ctx, "a@b.c", "pw", session.RoleSeeker); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	waitForNotifications(t, queue, 1)

	// The engine owns the queue it built: Close shuts it down.
	engine.Close()
	if h := queue.Enqueue(notify.Payload{Title: "late"}); h.ID != 0 {
		t.Fatal("engine-owned queue must be closed with the engine")
	}
}

func TestBuildQueueConfigShapesOwnedQueue(t *testing.T) {
	cfg := defaultConfig()
	cfg.Notifications.Capacity = 1

	engine, err := New().WithConfig(cfg).WithVerifier(StaticVerifier{}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()
	queue := engine.Notifications()

	ctx := context.Background()
	engine.Restore(ctx)
	if _, err := engine.Login(ctx, "a@b.c", "pw", session.RoleSeeker); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for queue.Stats().Enqueued < 2 {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for both outcomes, stats %+v", queue.Stats())
		case <-time.After(5 * time.Millisecond):
		}
	}

	items := queue.Items()
	if len(items) != 1 {
		t.Fatalf("configured capacity 1 not honored, have %d items", len(items))
	}
	if items[0].Payload.Title != "You've been logged out successfully." {
		t.Fatalf("head = %q, want the newest outcome", items[0].Payload.Title)
	}
}

func TestBuildSurfacingDisabledBuildsNoQueue(t *testing.T) {
	cfg := defaultConfig()
	cfg.Notifications.SurfaceOutcomes = false

	engine, err := New().WithConfig(cfg).WithVerifier(StaticVerifier{}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if engine.Notifications() != nil {
		t.Fatal("no queue must be constructed with surfacing off")
	}

	ctx := context.Background()
	engine.Restore(ctx)
	if _, err := engine.Login(ctx, "a@b.c", "pw", session.RoleSeeker); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
}

func TestBuildSuppliedQueueStaysCallerOwned(t *testing.T) {
	queue := notify.NewQueue(notify.Config{})
	defer queue.Close()

	engine, err := New().
		WithVerifier(StaticVerifier{}).
		WithNotifications(queue).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if engine.Notifications() != queue {
		t.Fatal("supplied queue must be the one surfaced")
	}

	engine.Close()
	if h := queue.Enqueue(notify.Payload{Title: "still mine"}); h.ID == 0 {
		t.Fatal("caller-owned queue must survive engine Close")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "json encoding valid",
			mutate: func(c *Config) {
				c.Session.Encoding = EncodingJSON
			},
			wantValid: true,
		},
		{
			name: "blank encoding valid",
			mutate: func(c *Config) {
				c.Session.Encoding = ""
			},
			wantValid: true,
		},
		{
			name: "signed with key valid",
			mutate: func(c *Config) {
				c.Session.Encoding = EncodingSigned
				c.Session.SigningKey = []byte("k")
			},
			wantValid: true,
		},
		{
			name: "signed without key invalid",
			mutate: func(c *Config) {
				c.Session.Encoding = EncodingSigned
			},
			wantValid: false,
		},
		{
			name: "unknown encoding invalid",
			mutate: func(c *Config) {
				c.Session.Encoding = "yaml"
			},
			wantValid: false,
		},
		{
			name: "negative notification capacity invalid",
			mutate: func(c *Config) {
				c.Notifications.Capacity = -1
			},
			wantValid: false,
		},
		{
			name: "negative event buffer invalid",
			mutate: func(c *Config) {
				c.Events.BufferSize = -1
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestConfigCloneDetachesSigningKey(t *testing.T) {
	key := []byte("shared-key")
	cfg := defaultConfig()
	cfg.Session.SigningKey = key

	clone := cloneConfig(cfg)
	key[0] = 'X'
	if clone.Session.SigningKey[0] == 'X' {
		t.Fatal("clone must hold its own signing key copy")
	}
}
