package world

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e2ekit/browserdog/internal/logging"
)

func quietLogger(t *testing.T) logging.Logger {
	t.Helper()
	log, err := logging.Setup("ERROR", "", "")
	require.NoError(t, err)
	return log
}

func TestAccessorsBeforeSetup(t *testing.T) {
	w := New(quietLogger(t))

	_, err := w.Page()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no page available")

	_, err = w.Session()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no browser context available")

	_, err = w.Browser()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no browser available")
}

func TestTeardownWithoutSetupIsANoOp(t *testing.T) {
	w := New(quietLogger(t))
	ctx := context.Background()

	// A failed setup still reaches teardown; with no live handles it must
	// neither panic nor attach anything.
	out := w.Teardown(ctx, errors.New("step assertion failed"))
	assert.Empty(t, godog.Attachments(out))

	out = w.Teardown(ctx, nil)
	assert.Empty(t, godog.Attachments(out))
}

func TestOnlyRealFailuresCountAsFailed(t *testing.T) {
	assert.False(t, isFailure(nil))
	assert.True(t, isFailure(errors.New("step assertion failed")))
	assert.True(t, isFailure(fmt.Errorf("after hook: %w", errors.New("boom"))))

	// godog's After hook also reports undefined and pending scenarios as
	// non-nil errors; neither status gets failure evidence.
	assert.False(t, isFailure(godog.ErrUndefined))
	assert.False(t, isFailure(godog.ErrPending))
	assert.False(t, isFailure(fmt.Errorf("step: %w", godog.ErrUndefined)))
	assert.False(t, isFailure(fmt.Errorf("step: %w", godog.ErrPending)))
}

func TestTeardownAttachesNothingForNonFailedStatuses(t *testing.T) {
	ctx := context.Background()

	for _, scenarioErr := range []error{nil, godog.ErrUndefined, godog.ErrPending} {
		w := New(quietLogger(t))
		out := w.Teardown(ctx, scenarioErr)
		assert.Empty(t, godog.Attachments(out))
	}
}

func TestTeardownIsIdempotent(t *testing.T) {
	w := New(quietLogger(t))
	ctx := context.Background()

	w.Teardown(ctx, nil)
	w.Teardown(ctx, nil)

	_, err := w.Page()
	require.Error(t, err)
}

func TestReleaseEachAttemptsEveryRelease(t *testing.T) {
	var order []string

	releaseEach(quietLogger(t), []release{
		{"page", func() error {
			order = append(order, "page")
			return errors.New("page already closed")
		}},
		{"browser context", func() error {
			order = append(order, "browser context")
			return nil
		}},
		{"browser", func() error {
			order = append(order, "browser")
			return errors.New("browser process gone")
		}},
		{"playwright driver", func() error {
			order = append(order, "playwright driver")
			return nil
		}},
	})

	assert.Equal(t, []string{"page", "browser context", "browser", "playwright driver"}, order)
}

func TestAttachScreenshotOnFailure(t *testing.T) {
	dir := t.TempDir()
	image := []byte("\x89PNG fake image bytes")

	ctx := attachScreenshot(context.Background(), quietLogger(t), "scenario_deadbeef.png", dir, func() ([]byte, error) {
		return image, nil
	})

	attachments := godog.Attachments(ctx)
	require.Len(t, attachments, 1)
	assert.Equal(t, "image/png", attachments[0].MediaType)
	assert.Equal(t, "scenario_deadbeef.png", attachments[0].FileName)
	assert.Equal(t, image, attachments[0].Body)

	written, err := os.ReadFile(filepath.Join(dir, "scenario_deadbeef.png"))
	require.NoError(t, err)
	assert.Equal(t, image, written)
}

func TestAttachScreenshotSwallowsCaptureFailure(t *testing.T) {
	dir := t.TempDir()

	ctx := attachScreenshot(context.Background(), quietLogger(t), "scenario.png", dir, func() ([]byte, error) {
		return nil, errors.New("page already closed")
	})

	assert.Empty(t, godog.Attachments(ctx), "a failed capture must not attach anything")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAttachScreenshotWithoutArtifactsDir(t *testing.T) {
	ctx := attachScreenshot(context.Background(), quietLogger(t), "scenario.png", "", func() ([]byte, error) {
		return []byte("img"), nil
	})

	require.Len(t, godog.Attachments(ctx), 1)
}

func TestArtifactName(t *testing.T) {
	name := artifactName("Signing in with valid credentials")
	assert.True(t, strings.HasPrefix(name, "signing-in-with-valid-credentials_"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	assert.NotEqual(t, artifactName("same scenario"), artifactName("same scenario"),
		"repeated failures of one scenario must not collide")

	fallback := artifactName("!!!")
	assert.True(t, strings.HasPrefix(fallback, "scenario_"), fallback)
}

func TestEngineForRejectsUnknownEngine(t *testing.T) {
	_, err := engineFor(nil, "netscape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid browser: netscape")
}
