package lifecycle

import (
	"errors"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/domain"
)

func TestTransitions(t *testing.T) {
	cases := []struct {
		name    string
		kind    domain.Kind
		from    State
		action  Action
		want    State
		wantErr error
	}{
		{name: "new page to draft", kind: domain.KindPage, from: StateNew, action: ActionSaveDraft, want: StateDraft},
		{name: "draft page update", kind: domain.KindPage, from: StateDraft, action: ActionSaveDraft, want: StateDraft},
		{name: "draft page publish", kind: domain.KindPage, from: StateDraft, action: ActionPublish, want: StatePublished},
		{name: "published page unpublish", kind: domain.KindPage, from: StatePublished, action: ActionUnpublish, want: StateDraft},
		{name: "new page publish rejected", kind: domain.KindPage, from: StateNew, action: ActionPublish, want: StateNew, wantErr: ErrPublishBeforeDraft},
		{name: "new container publish", kind: domain.KindContainer, from: StateNew, action: ActionPublish, want: StatePublished},
		{name: "new element publish", kind: domain.KindElement, from: StateNew, action: ActionPublish, want: StatePublished},
		{name: "republish keeps published", kind: domain.KindElement, from: StatePublished, action: ActionPublish, want: StatePublished},
		{name: "unpublish new rejected", kind: domain.KindContainer, from: StateNew, action: ActionUnpublish, want: StateNew, wantErr: ErrNotSaved},
		{name: "unknown action", kind: domain.KindPage, from: StateDraft, action: Action("archive"), want: StateDraft, wantErr: ErrTransitionInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.kind, tc.from, tc.action)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if !IsLifecycleError(err) {
					t.Fatalf("expected LifecycleError, got %T", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected state %s, got %s", tc.want, got)
			}
		})
	}
}

func TestLifecycleErrorMessage(t *testing.T) {
	_, err := Publish(domain.KindPage, StateNew)
	var lifecycleErr *LifecycleError
	if !errors.As(err, &lifecycleErr) {
		t.Fatalf("expected LifecycleError, got %v", err)
	}
	if lifecycleErr.Action != ActionPublish || lifecycleErr.Kind != domain.KindPage {
		t.Fatalf("unexpected error fields: %+v", lifecycleErr)
	}
	want := "lifecycle: entity must be saved as a draft before publishing: kind=pages state=new action=publish"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestLegacyFlagsKeepAsymmetry(t *testing.T) {
	codec := LegacyFlags()

	if got := codec.Encode(domain.KindPage, StatePublished); got != (Flags{Publish: true}) {
		t.Fatalf("page published flags: %+v", got)
	}
	if got := codec.Encode(domain.KindContainer, StatePublished); got != (Flags{Draft: true, Publish: true}) {
		t.Fatalf("container published flags: %+v", got)
	}
	if got := codec.Encode(domain.KindElement, StateDraft); got != (Flags{Draft: true}) {
		t.Fatalf("element draft flags: %+v", got)
	}
	if got := codec.Encode(domain.KindPage, StateNew); got != (Flags{}) {
		t.Fatalf("new flags: %+v", got)
	}
}

func TestFlagsRoundTrip(t *testing.T) {
	for _, codec := range []FlagCodec{LegacyFlags(), UniformFlags()} {
		for _, kind := range []domain.Kind{domain.KindPage, domain.KindContainer, domain.KindElement} {
			for _, state := range []State{StateNew, StateDraft, StatePublished} {
				flags := codec.Encode(kind, state)
				if got := codec.Decode(kind, flags); got != state {
					t.Fatalf("kind %s state %s decoded as %s", kind, state, got)
				}
			}
		}
	}
}

func TestFlagCodecFor(t *testing.T) {
	if got := FlagCodecFor("uniform").Encode(domain.KindPage, StatePublished); got != (Flags{Draft: true, Publish: true}) {
		t.Fatalf("uniform page flags: %+v", got)
	}
	if got := FlagCodecFor("").Encode(domain.KindPage, StatePublished); got != (Flags{Publish: true}) {
		t.Fatalf("default page flags: %+v", got)
	}
}

func TestStateNormalize(t *testing.T) {
	if State(" Draft ").Normalize() != StateDraft {
		t.Fatal("expected draft")
	}
	if State("bogus").Normalize() != StateNew {
		t.Fatal("expected unknown state to normalize to new")
	}
}
