package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsRunIDAndError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx, runID := WithRunID(context.Background())
	if runID == "" {
		t.Fatal("expected a run id")
	}

	err := errors.New("boom")
	Time(ctx, "routes.test")(&err)

	line := buf.String()
	if !strings.Contains(line, "run_id="+runID) {
		t.Errorf("log line %q missing run id", line)
	}
	if !strings.Contains(line, "op=routes.test") || !strings.Contains(line, "err=boom") {
		t.Errorf("log line %q missing op or err", line)
	}
}
