package api

import (
	"testing"

	"commander/model"

	"github.com/google/go-cmp/cmp"
)

func TestToReadDto(t *testing.T) {
	got := ToReadDto(model.Command{ID: 7, HowTo: "list files", Line: "ls -la", Platform: "linux"})
	want := CommandReadDto{ID: 7, HowTo: "list files", Line: "ls -la", Platform: "linux"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToReadDto mismatch (-want +got):\n%s", diff)
	}
}

func TestToReadDtos_EmptyIsNotNil(t *testing.T) {
	got := ToReadDtos(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("ToReadDtos(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestFromCreateDto_LeavesIDUnset(t *testing.T) {
	got := FromCreateDto(CommandCreateDto{HowTo: "h", Line: "l", Platform: "p"})
	want := model.Command{HowTo: "h", Line: "l", Platform: "p"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromCreateDto mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateDtoRoundTrip_KeepsID(t *testing.T) {
	stored := model.Command{ID: 3, HowTo: "h", Line: "l", Platform: "p"}

	dto := ToUpdateDto(stored)
	dto.Line = "l2"
	ApplyUpdateDto(dto, &stored)

	want := model.Command{ID: 3, HowTo: "h", Line: "l2", Platform: "p"}
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Errorf("ApplyUpdateDto mismatch (-want +got):\n%s", diff)
	}
}
