package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Fake tool scripts emulate just enough of cuetools, shntool, flac, wavpack,
// and monkeys-audio for pipeline tests. They rely only on /bin/sh, grep, and
// awk. Track "FLAC" files are plain text; cuetag appends KEY=value lines to
// them and metaflac greps those lines back.
var fakeTools = map[string]string{
	"cuebreakpoints": `#!/bin/sh
[ -f "$1" ] || { echo "cuebreakpoints: $1: no such file" >&2; exit 1; }
n=$(grep -c '^[[:space:]]*TRACK ' "$1")
i=1
while [ "$i" -lt "$n" ]; do
  echo "$i:00.00"
  i=$((i+1))
done
`,
	"shnsplit": `#!/bin/sh
dir=.
while [ $# -gt 0 ]; do
  case "$1" in
    -d) dir="$2"; shift 2 ;;
    -o) shift 2 ;;
    *) image="$1"; shift ;;
  esac
done
[ -f "$image" ] || { echo "shnsplit: cannot open $image" >&2; exit 1; }
if grep -q CORRUPT "$image"; then
  echo "shnsplit: error while reading $image" >&2
  exit 1
fi
n=1
while read -r line; do n=$((n+1)); done
i=1
while [ "$i" -le "$n" ]; do
  printf 'audio\n' > "$(printf '%s/split-track%02d.flac' "$dir" "$i")"
  i=$((i+1))
done
`,
	"cuetag": `#!/bin/sh
cue="$1"
shift
if grep -q NOTAG "$cue"; then
  echo "cuetag: cannot tag" >&2
  exit 2
fi
i=1
for file in "$@"; do
  awk -v n="$i" '
    /^[ \t]*TRACK / { t++; next }
    t == n && /^[ \t]*TITLE / { sub(/^[ \t]*TITLE "?/, ""); sub(/"?[ \t\r]*$/, ""); print "TITLE=" $0 }
    t == n && /^[ \t]*PERFORMER / { sub(/^[ \t]*PERFORMER "?/, ""); sub(/"?[ \t\r]*$/, ""); print "ARTIST=" $0 }
  ' "$cue" >> "$file"
  echo "TRACKNUMBER=$i" >> "$file"
  i=$((i+1))
done
`,
	"metaflac": `#!/bin/sh
tag="${1#--show-tag=}"
file="$2"
[ -f "$file" ] || { echo "metaflac: cannot open $file" >&2; exit 1; }
grep "^$tag=" "$file" | head -n 1
exit 0
`,
	"wvunpack": `#!/bin/sh
for last; do :; done
src="$last"
base="${src%.*}"
if grep -q FAIL "$src"; then
  echo "wvunpack: $src is not a valid WavPack file" >&2
  exit 1
fi
cp "$src" "$base.cue"
printf 'audio\n' > "$base.wav"
rm -f "$src"
`,
	"mac": `#!/bin/sh
echo "Monkey's Audio (fake)" >&2
exit 1
`,
}

// scriptPath lets the fakes find grep and awk when PATH only holds the fakes.
const scriptPath = "PATH=/usr/local/bin:/usr/bin:/bin; export PATH"

// FakeToolNames lists every fake tool InstallFakeTools can provide.
func FakeToolNames() []string {
	return []string{"cuebreakpoints", "shnsplit", "cuetag", "metaflac", "wvunpack", "mac"}
}

// InstallFakeTools writes the named fake tools (all when names is empty) into dir.
func InstallFakeTools(t testing.TB, dir string, names ...string) {
	t.Helper()

	if len(names) == 0 {
		names = FakeToolNames()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for _, name := range names {
		script, ok := fakeTools[name]
		if !ok {
			t.Fatalf("no fake tool named %q", name)
		}
		script = strings.Replace(script, "\n", "\n"+scriptPath+"\n", 1)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
			t.Fatalf("write fake %s: %v", name, err)
		}
	}
}
