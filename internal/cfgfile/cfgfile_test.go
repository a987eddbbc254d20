package cfgfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinder/internal/cfgfile"
	"cinder/internal/mir"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFixture(t, `
name = "loopy"
entry = 0

[[block]]
id = 0
succs = [1]

[[block]]
id = 1
instrs = 2
succs = [2, 3]
probs = [0.9, 0.1]

[[block]]
id = 2
succs = [1]

[[block]]
id = 3
exception_entry = true
succs = []
`)

	f, err := cfgfile.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Name != "loopy" || f.Entry != 0 || len(f.Blocks) != 4 {
		t.Fatalf("unexpected func: %+v", f)
	}
	if f.Blocks[0].Term.Kind != mir.TermGoto {
		t.Errorf("bb0 kind = %v, want goto", f.Blocks[0].Term.Kind)
	}
	if b := &f.Blocks[1]; b.Term.Kind != mir.TermIf || b.Term.If.ThenProbability != 0.9 || len(b.Instrs) != 2 {
		t.Errorf("bb1 lowered wrong: %+v", b)
	}
	if f.Blocks[3].Term.Kind != mir.TermReturn || !f.Blocks[3].IsExceptionEntry() {
		t.Errorf("bb3 lowered wrong: %+v", f.Blocks[3])
	}
}

func TestLoad_SwitchArity(t *testing.T) {
	path := writeFixture(t, `
name = "sw"
entry = 0

[[block]]
id = 0
succs = [1, 2, 3]

[[block]]
id = 1
succs = []

[[block]]
id = 2
succs = []

[[block]]
id = 3
succs = []
`)
	f, err := cfgfile.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Blocks[0].Term.Kind != mir.TermSwitch || len(f.Blocks[0].Term.Switch.Targets) != 3 {
		t.Errorf("switch lowered wrong: %+v", f.Blocks[0].Term)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name, content, want string
	}{
		{
			name: "unknown key",
			content: `
name = "x"
bogus = 1
[[block]]
id = 0
succs = []
`,
			want: "unknown key",
		},
		{
			name: "sparse ids",
			content: `
name = "x"
[[block]]
id = 3
succs = []
`,
			want: "ids must be dense",
		},
		{
			name: "bad target",
			content: `
name = "x"
[[block]]
id = 0
succs = [9]
`,
			want: "does not exist",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cfgfile.Load(writeFixture(t, tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}
