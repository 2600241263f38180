package job

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatus_Terminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusRunning, false},
		{StatusSucceeded, true},
		{StatusFailed, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusPending, true},
		{StatusPending, StatusRunning, true},
		{StatusPending, StatusSucceeded, true}, // RUNNING may be skipped
		{StatusPending, StatusFailed, true},
		{StatusRunning, StatusSucceeded, true},
		{StatusRunning, StatusFailed, true},
		{StatusRunning, StatusPending, false},
		{StatusSucceeded, StatusRunning, false},
		{StatusSucceeded, StatusFailed, false},
		{StatusFailed, StatusSucceeded, false},
		{StatusFailed, StatusFailed, true},
	}
	for _, tt := range tests {
		if got := tt.from.canTransition(tt.to); got != tt.want {
			t.Errorf("canTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestJob_Expired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	if (Job{ExpirationTime: &past}).Expired() != true {
		t.Error("job with past expiration should be expired")
	}
	if (Job{ExpirationTime: &future}).Expired() != false {
		t.Error("job with future expiration should not be expired")
	}
	if (Job{}).Expired() != false {
		t.Error("job without expiration should not be expired")
	}
}

func TestJob_WireFormat(t *testing.T) {
	raw := `{
		"job_id": "j-1",
		"job_type": "RTC_GAMMA",
		"name": "my-granule",
		"job_parameters": {"granules": ["S1A_IW"]},
		"status_code": "SUCCEEDED",
		"request_time": "2024-01-02T03:04:05Z",
		"files": [{"filename": "out.zip", "size": 1024, "url": "https://example.com/out.zip"}],
		"browse_images": ["https://example.com/browse.png"],
		"logs": ["https://example.com/run.log"]
	}`

	var j Job
	if err := json.Unmarshal([]byte(raw), &j); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if j.ID != "j-1" {
		t.Errorf("ID = %q, want %q", j.ID, "j-1")
	}
	if j.Status != StatusSucceeded {
		t.Errorf("Status = %s, want %s", j.Status, StatusSucceeded)
	}
	if !j.Succeeded() || !j.Complete() {
		t.Error("succeeded job should be complete and succeeded")
	}
	if j.SubmittedAt == nil || j.SubmittedAt.Year() != 2024 {
		t.Errorf("SubmittedAt = %v, want 2024 timestamp", j.SubmittedAt)
	}
	if len(j.Files) != 1 || j.Files[0].Size != 1024 {
		t.Errorf("Files = %+v, want one 1024-byte file", j.Files)
	}
}
