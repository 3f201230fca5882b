//go:build integration

package pages_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"strings"
	"testing"
	"time"

	pfirestore "github.com/goliatone/go-pagebuilder/internal/adapters/firestore"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/pages"
)

const firestoreEmulatorImage = "gcr.io/google.com/cloudsdktool/cloud-sdk:emulators"

func TestFirestoreStoreIntegration(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not available: " + err.Error())
	}
	ensureDockerDaemon(t)

	port := freePort(t)
	endpoint := fmt.Sprintf("127.0.0.1:%d", port)
	containerID := startFirestoreEmulator(t, port)
	defer stopContainer(containerID)
	waitForEndpoint(t, endpoint, 30*time.Second)

	provider := pfirestore.NewProvider(pfirestore.Config{ProjectID: "test-project", EmulatorHost: endpoint})
	t.Cleanup(func() { _ = provider.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := pages.NewFirestoreStore(provider, pages.WithCollection("pages_it"))
	svc := pages.NewService(store)
	actorCtx := identity.WithActor(ctx, "editor-1")

	id, err := svc.Create(actorCtx, pages.PageDraft{Slug: "about", Title: pages.Localized{"en": "About"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sub, err := svc.Watch(ctx, id)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer sub.Close()
	if first := receive(t, sub); first.Page == nil || first.Page.Slug != "about" {
		t.Fatalf("expected initial snapshot, got %+v", first)
	}

	if err := svc.TogglePublish(actorCtx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	published := pages.StatusPublished
	page, err := svc.GetBySlug(ctx, "about", &published)
	if err != nil || page == nil {
		t.Fatalf("expected published page, got %v %v", page, err)
	}

	copyID, err := svc.Duplicate(actorCtx, id)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	copied, err := svc.GetByID(ctx, copyID)
	if err != nil || copied == nil || copied.Slug != "about-copy" || copied.Status != pages.StatusDraft {
		t.Fatalf("unexpected copy %+v %v", copied, err)
	}

	if err := svc.Delete(actorCtx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, id); !errors.Is(err, pages.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unable to allocate port: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func startFirestoreEmulator(t *testing.T, port int) string {
	t.Helper()
	out, err := exec.Command("docker", "run", "-d", "--rm",
		"-p", fmt.Sprintf("%d:8080", port),
		firestoreEmulatorImage,
		"gcloud", "beta", "emulators", "firestore", "start",
		"--host-port=0.0.0.0:8080", "--quiet",
	).CombinedOutput()
	if err != nil {
		t.Fatalf("failed to start firestore emulator: %v - %s", err, string(out))
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		t.Fatalf("docker returned empty container id")
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

func stopContainer(id string) {
	if id == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = exec.CommandContext(ctx, "docker", "stop", id).Run()
}

func waitForEndpoint(t *testing.T, endpoint string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", endpoint, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		lastErr = err
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("emulator did not become ready: %v", lastErr)
}

func ensureDockerDaemon(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("docker daemon unavailable: " + err.Error())
	}
}
