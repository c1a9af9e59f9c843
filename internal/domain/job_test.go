package domain_test

import (
	"errors"
	"testing"

	"github.com/techreviewhub/automation/internal/domain"
)

func TestJobKindIsValid(t *testing.T) {
	tests := []struct {
		kind domain.JobKind
		want bool
	}{
		{domain.KindReview, true},
		{domain.KindArticle, true},
		{domain.JobKind(""), false},
		{domain.JobKind("podcast"), false},
	}
	for _, tc := range tests {
		if got := tc.kind.IsValid(); got != tc.want {
			t.Errorf("JobKind(%q).IsValid() = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestContentJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     domain.ContentJob
		wantErr error
	}{
		{
			name: "valid review",
			job:  domain.ContentJob{Kind: domain.KindReview, Title: "Echo Dot"},
		},
		{
			name: "valid article",
			job:  domain.ContentJob{Kind: domain.KindArticle, Title: "Smart Home Guide"},
		},
		{
			name:    "unknown kind",
			job:     domain.ContentJob{Kind: "podcast", Title: "Echo Dot"},
			wantErr: domain.ErrInvalidJobKind,
		},
		{
			name:    "missing title",
			job:     domain.ContentJob{Kind: domain.KindReview},
			wantErr: domain.ErrInvalidJobTitle,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.job.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestTransferStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status domain.TransferStatus
		want   bool
	}{
		{domain.TransferInitiated, false},
		{domain.TransferSubmitted, false},
		{domain.TransferPending, false},
		{domain.TransferSuccessful, true},
		{domain.TransferFailed, true},
	}
	for _, tc := range tests {
		if got := tc.status.IsTerminal(); got != tc.want {
			t.Errorf("%s.IsTerminal() = %v, want %v", tc.status, got, tc.want)
		}
	}
}
