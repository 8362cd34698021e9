package listen_test

import (
	"testing"
	"unsafe"

	"github.com/dshills/dispatchkit/listen"
)

func TestTokenize(t *testing.T) {
	tok := listen.Tokenize("!")

	tests := []struct {
		name     string
		in       string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{name: "name only", in: "!ping", wantName: "ping", wantOK: true},
		{name: "name and args", in: "!ban user1 spam", wantName: "ban", wantArgs: []string{"user1", "spam"}, wantOK: true},
		{name: "extra whitespace", in: "!  kick   a\t b", wantName: "kick", wantArgs: []string{"a", "b"}, wantOK: true},
		{name: "no prefix", in: "ping", wantOK: false},
		{name: "prefix only", in: "!", wantOK: false},
		{name: "prefix then spaces", in: "!   ", wantOK: false},
		{name: "empty input", in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := tok.Listen(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cmd.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", cmd.Name, tt.wantName)
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("Args = %v, want %v", cmd.Args, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestTokenizeBorrowsInput(t *testing.T) {
	in := "!deploy staging now"
	cmd, ok := listen.Tokenize("!").Listen(in)
	if !ok {
		t.Fatal("rejected")
	}

	// The command name must be a sub-view of the input, not a copy.
	inData := unsafe.StringData(in)
	nameData := unsafe.StringData(cmd.Name)
	if uintptr(unsafe.Pointer(nameData)) < uintptr(unsafe.Pointer(inData)) ||
		uintptr(unsafe.Pointer(nameData)) >= uintptr(unsafe.Pointer(inData))+uintptr(len(in)) {
		t.Error("Name does not alias the input string")
	}
}

func TestTokenizeRejectionAllocates(t *testing.T) {
	tok := listen.Tokenize("!")
	allocs := testing.AllocsPerRun(200, func() {
		if _, ok := tok.Listen("plain chat message with no prefix"); ok {
			t.Fatal("unexpected accept")
		}
	})
	if allocs != 0 {
		t.Errorf("rejection allocated %.1f times per run, want 0", allocs)
	}
}

func TestCommandPromote(t *testing.T) {
	cmd, ok := listen.Tokenize("!").Listen("!mute carol 10m")
	if !ok {
		t.Fatal("rejected")
	}

	owned := cmd.Promote()

	if owned.Name != cmd.Name || owned.Raw != cmd.Raw {
		t.Errorf("promoted copy differs: %+v vs %+v", owned, cmd)
	}
	if len(owned.Args) != len(cmd.Args) {
		t.Fatalf("Args length differs")
	}
	for i := range cmd.Args {
		if owned.Args[i] != cmd.Args[i] {
			t.Errorf("Args[%d] = %q, want %q", i, owned.Args[i], cmd.Args[i])
		}
	}

	// Promoted strings must not share backing storage with the borrowed ones.
	if unsafe.StringData(owned.Name) == unsafe.StringData(cmd.Name) {
		t.Error("promoted Name aliases the borrowed view")
	}
}
