package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContactSubmitStoresSubmission(t *testing.T) {
	gdb := setupServiceTestDB(t)
	core, logs := observer.New(zap.InfoLevel)
	svc := NewContactService(gdb, zap.New(core))

	submission, err := svc.Submit(ContactInput{Name: "  Asha ", Email: "asha@example.com", RemoteIP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if submission.Name != "Asha" {
		t.Fatalf("expected trimmed name, got %q", submission.Name)
	}
	if _, err := uuid.Parse(submission.Reference); err != nil {
		t.Fatalf("expected uuid reference, got %q", submission.Reference)
	}

	if logs.FilterMessage("contact form submitted").Len() != 1 {
		t.Fatalf("expected one submission log entry, got %d", logs.Len())
	}

	items, err := svc.ListRecent(0)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(items) != 1 || items[0].Reference != submission.Reference {
		t.Fatalf("unexpected submissions: %+v", items)
	}
}

func TestContactSubmitValidatesInput(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb, nil)

	cases := []ContactInput{
		{Email: "a@example.com"},
		{Name: "A"},
		{Name: "A", Email: "not-an-email"},
		{Name: "A", Email: "a@example.com", Message: strings.Repeat("x", maxContactMessageRunes+1)},
	}
	for _, input := range cases {
		if _, err := svc.Submit(input); !errors.Is(err, ErrContactInvalidInput) {
			t.Fatalf("expected ErrContactInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestContactListRecentNewestFirst(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb, nil)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := svc.Submit(ContactInput{Name: name, Email: name + "@example.com"}); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	items, err := svc.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(items) != 2 || items[0].Name != "third" || items[1].Name != "second" {
		t.Fatalf("unexpected order: %+v", items)
	}
}
