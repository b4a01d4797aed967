package laxjson

import "testing"

func TestIsLikelyFilePath(t *testing.T) {
	positive := []string{
		`C:\temp`,
		`C:\Users\Documents`,
		`D:\Program Files\App\file.exe`,
		`\\server\share`,
		`\\server\share\folder\file.txt`,
		`\users\john\documents`,
		`path\to\file.txt`,
		`folder\subfolder\document.json`,
		`/usr/local/bin`,
		`/home/user/documents/file.log`,
		`~/documents/file.txt`,
		`file:///etc/passwd`,
		`smb://server/share/folder/file.doc`,
		`ftp://ftp.example.com/pub/files/archive.zip`,
	}
	for _, in := range positive {
		if !isLikelyFilePath(in) {
			t.Errorf("expected %q to be detected as a file path", in)
		}
	}

	negative := []string{
		"hello world",
		`\n`,
		`\t`,
		`\u2605`,
		`\/`,
		`\"`,
		"https://example.com",
		"http://test.com/path",
		"simple text",
		"",
		"a",
		"dGVzdCBzdHJpbmcgZm9yIGJhc2U2NCBlbmNvZGluZw==",
		"mailto:user@example.com",
	}
	for _, in := range negative {
		if isLikelyFilePath(in) {
			t.Errorf("expected %q NOT to be detected as a file path", in)
		}
	}
}

func TestAnalyzePotentialFilePath(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{`"C:\temp\file.txt"`, true},
		{`"Hello\nWorld"`, false},
		{`"\users\john"`, true},
		{`"Regular text message"`, false},
		{`"path\to\document.json"`, true},
		{`"\\server\share\folder"`, true},
		{`"https://example.com/path"`, false},
		{`"/usr/local/bin/app"`, true},
		{`"dGVzdCBzdHJpbmcgZm9yIGJhc2U2NCBlbmNvZGluZw=="`, false},
		{`"file:///etc/passwd"`, true},
	}
	for _, tc := range tests {
		runes := []rune(tc.input)
		got := analyzePotentialFilePath(runes, 0)
		if got != tc.expected {
			t.Errorf("analyzePotentialFilePath(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestIsURLPath(t *testing.T) {
	positive := []string{
		"file:///etc/passwd",
		"file://localhost/home/user/document.txt",
		"FILE:///usr/bin/bash",
		"smb://server/share/folder/file.doc",
		"SMB://domain.com/public/archive.zip",
		"ftp://ftp.example.com/pub/files/data.csv",
		"FTP://files.domain.org/downloads/software.exe",
	}
	for _, in := range positive {
		if !isURLPath(in) {
			t.Errorf("expected %q to be a URL-style file path", in)
		}
	}

	negative := []string{
		"https://example.com/api/data",
		"http://localhost:8080/app",
		"mailto:user@example.com",
		"ftp://ftp.example.com",
		"smb://server",
		"file://",
		"regular text",
	}
	for _, in := range negative {
		if isURLPath(in) {
			t.Errorf("expected %q NOT to be a URL-style file path", in)
		}
	}
}

func TestHasValidPathStructure(t *testing.T) {
	positive := []string{
		"/etc/passwd",
		"/home/user/documents/file.txt",
		`C:\Windows\System32`,
		`C:\Program Files\App\config.ini`,
		"~/documents/readme.md",
		"folder/subfolder/file.log",
		`src\main\java\App.java`,
		"../parent/folder/data.json",
	}
	for _, in := range positive {
		if !hasValidPathStructure(in) {
			t.Errorf("expected %q to have a valid path structure", in)
		}
	}

	negative := []string{
		"",
		"a",
		"hello world",
		"just-a-filename",
	}
	for _, in := range negative {
		if hasValidPathStructure(in) {
			t.Errorf("expected %q NOT to have a valid path structure", in)
		}
	}
}
