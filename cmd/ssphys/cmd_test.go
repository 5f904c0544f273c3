package main

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, newVersionCmd())
	if err != nil {
		t.Fatalf("version Execute: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Fatalf("version output = %q, want %q", out, version)
	}
}

func TestValidateCmdPassesHealthyFile(t *testing.T) {
	path := writePhysical(t, t.TempDir(), "aaaaaaaa", historyFile(t, "notes.txt", ""))
	out, err := runCmd(t, newValidateCmd(), path)
	if err != nil {
		t.Fatalf("validate Execute: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "PASS "+path+": 4 record(s)") {
		t.Fatalf("validate output = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("output to a buffer should not be coloured: %q", out)
	}
}

func TestValidateCmdReportsUnknownKind(t *testing.T) {
	path := plainFile(t)
	out, err := runCmd(t, newValidateCmd(), path)
	if err == nil {
		t.Fatalf("validate should fail on an unknown record\noutput:\n%s", out)
	}
	for _, want := range []string{"unknown-kind", "FAIL " + path, "0 error(s), 1 warning(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("validate output missing %q:\n%s", want, out)
		}
	}

	out, err = runCmd(t, newValidateCmd(), "--accept-unknown", path)
	if err != nil || !strings.Contains(out, "PASS "+path) {
		t.Fatalf("validate --accept-unknown = %v\noutput:\n%s", err, out)
	}
}

func TestValidateCmdCountsEveryFile(t *testing.T) {
	good := writePhysical(t, t.TempDir(), "aaaaaaaa", historyFile(t, "notes.txt", ""))
	junk := filepath.Join(t.TempDir(), "junk")
	if err := os.WriteFile(junk, []byte("plain text, not a database file"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := runCmd(t, newValidateCmd(), good, junk)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 file(s) failed") {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "FAIL "+junk) || !strings.Contains(out, "file not recognized") {
		t.Fatalf("validate output = %q", out)
	}
}

func TestDumpCmdOneLinePerRecord(t *testing.T) {
	out, err := runCmd(t, newDumpCmd(), plainFile(t))
	if err != nil {
		t.Fatalf("dump Execute: %v", err)
	}
	want := "Offset: 0x00000000 Kind: BranchFile Tag: BF Len: 10 Prev: 0 BranchTo: BAAAAA\n" +
		"Offset: 0x00000012 Kind: Unknown Tag: ZZ Len: 4\n"
	if out != want {
		t.Fatalf("dump output = %q, want %q", out, want)
	}
}

func TestDumpCmdFields(t *testing.T) {
	out, err := runCmd(t, newDumpCmd(), "--fields", plainFile(t))
	if err != nil {
		t.Fatalf("dump Execute: %v", err)
	}
	if !strings.Contains(out, "  BranchToPhys: BAAAAA\n") {
		t.Fatalf("dump --fields output = %q", out)
	}
}

func TestXMLCmdWritesFile(t *testing.T) {
	path := writePhysical(t, t.TempDir(), "aaaaaaaa", historyFile(t, "notes.txt", ""))
	dest := filepath.Join(t.TempDir(), "out.xml")
	if out, err := runCmd(t, newXMLCmd(), "-o", dest, path); err != nil {
		t.Fatalf("xml Execute: %v\noutput:\n%s", err, out)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc struct {
		XMLName xml.Name
		Records []struct {
			Tag string `xml:"tag,attr"`
		} `xml:"Record"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, data)
	}
	if doc.XMLName.Local != "PhysicalFile" || len(doc.Records) != 4 || doc.Records[0].Tag != "DH" {
		t.Fatalf("xml document = %+v", doc)
	}
}

func TestInfoCmd(t *testing.T) {
	path := writePhysical(t, t.TempDir(), "aaaaaaaa", historyFile(t, "notes.txt", ""))
	out, err := runCmd(t, newInfoCmd(), path)
	if err != nil {
		t.Fatalf("info Execute: %v", err)
	}
	for _, want := range []string{
		"Layout:   history\n",
		"BLAKE2b:  ",
		"Item:     file \"notes.txt\", latest .A, 2 action(s)\n",
		"Records:  4\n",
		"  History         2\n",
		"  FileDelta       1\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestRecordsCmd(t *testing.T) {
	path := writePhysical(t, t.TempDir(), "aaaaaaaa", historyFile(t, "notes.txt", ""))
	out, err := runCmd(t, newRecordsCmd(), path)
	if err != nil {
		t.Fatalf("records Execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "Offset: 52 Type: DH Len: 356") {
		t.Fatalf("records output = %q", out)
	}
	if strings.Contains(out, "invalid") {
		t.Fatalf("checksums should all match:\n%s", out)
	}

	out, err = runCmd(t, newRecordsCmd(), "--bad", path)
	if err != nil || out != "" {
		t.Fatalf("records --bad = %q, %v", out, err)
	}
}

func TestHistoryCmd(t *testing.T) {
	path := writePhysical(t, t.TempDir(), "aaaaaaaa", historyFile(t, "notes.txt", ""))
	out, err := runCmd(t, newHistoryCmd(), path)
	if err != nil {
		t.Fatalf("history Execute: %v", err)
	}
	v2 := strings.Index(out, "Version 2\n")
	v1 := strings.Index(out, "Version 1\n")
	if v2 < 0 || v1 < 0 || v2 > v1 {
		t.Fatalf("history should list version 2 before version 1:\n%s", out)
	}
	if !strings.Contains(out, "Checked in $/docs/notes.txt") || !strings.Contains(out, "User:   admin") {
		t.Fatalf("history output = %q", out)
	}

	out, err = runCmd(t, newHistoryCmd(), "-n", "1", path)
	if err != nil || strings.Contains(out, "Version 1\n") {
		t.Fatalf("history -n 1 = %v\n%s", err, out)
	}
}

func TestBranchesCmd(t *testing.T) {
	root := t.TempDir()
	path := writePhysical(t, root, "aaaaaaaa", historyFile(t, "notes.txt", "BAAAAAAA"))
	writePhysical(t, root, "baaaaaaa", historyFile(t, "notes-v2.txt", ""))

	out, err := runCmd(t, newBranchesCmd(), path)
	if err != nil {
		t.Fatalf("branches Execute: %v\noutput:\n%s", err, out)
	}
	for _, want := range []string{"Branches of notes.txt:", "BAAAAAAA  file notes-v2.txt", "Shared in:\n  (none)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("branches output missing %q:\n%s", want, out)
		}
	}
}

func TestGetCmd(t *testing.T) {
	path := writePhysical(t, t.TempDir(), "aaaaaaaa", historyFile(t, "notes.txt", ""))

	out, err := runCmd(t, newGetCmd(), "--version", "1", path)
	if err != nil || out != firstText {
		t.Fatalf("get to stdout = %q, %v", out, err)
	}

	dest := filepath.Join(t.TempDir(), "restored", "notes.txt")
	if _, err := runCmd(t, newGetCmd(), "-V", "2", "-o", dest, path); err != nil {
		t.Fatalf("get -o: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != latestText {
		t.Fatalf("restored = %q, %v", data, err)
	}

	if _, err := runCmd(t, newGetCmd(), "-V", "1", "-o", dest, path); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("get over an existing file = %v, want refusal", err)
	}
	if _, err := runCmd(t, newGetCmd(), "-V", "1", "-o", dest, "--force", path); err != nil {
		t.Fatalf("get --force: %v", err)
	}
	if data, _ := os.ReadFile(dest); string(data) != firstText {
		t.Fatalf("forced restore = %q", data)
	}
}

func TestRootCmdLoadsConfig(t *testing.T) {
	t.Cleanup(func() {
		loaded, configPath, colorFlag, verbosity = nil, "", "", 0
		logrus.SetOutput(os.Stderr)
	})

	cfgPath := filepath.Join(t.TempDir(), "ssphys.toml")
	if err := os.WriteFile(cfgPath, []byte("accept_unknown = true\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := runCmd(t, newRootCmd(), "--config", cfgPath, "validate", plainFile(t))
	if err != nil || !strings.Contains(out, "PASS ") {
		t.Fatalf("validate with accept_unknown config = %v\noutput:\n%s", err, out)
	}
	if !settings().AcceptUnknown {
		t.Fatal("settings() should return the loaded config")
	}

	if _, err := runCmd(t, newRootCmd(), "--config", cfgPath, "--color", "purple", "version"); err == nil {
		t.Fatal("bad --color value should fail")
	}
	if _, err := runCmd(t, newRootCmd(), "--config", filepath.Join(t.TempDir(), "missing.toml"), "version"); err == nil {
		t.Fatal("missing explicit config should fail")
	}
}
