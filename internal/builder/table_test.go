package builder

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`101,"foo,bar",5`, []string{"101", "foo,bar", "5"}},
		{`1,2,3`, []string{"1", "2", "3"}},
		{``, []string{""}},
		{`a,,c,`, []string{"a", "", "c", ""}},
		{`7,"say ""hi"", then go",9`, []string{"7", `say "hi", then go`, "9"}},
		{`8,half"quoted,still"open,1`, []string{"8", "halfquoted,stillopen", "1"}},
		{`"12",""`, []string{"12", ""}},
	}

	for _, tt := range tests {
		if got := SplitLine(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLine(%q): expected %q, got %q", tt.line, tt.want, got)
		}
	}
}

func TestReadTable(t *testing.T) {
	input := "\ufeffkey,Name,Icon\r\n" +
		"1,\"Potion, Hi\",20\r\n" +
		"\r\n" +
		"2,\"Multi\nline\",21\n" +
		"3,Ether,22"

	rows, err := ReadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	want := [][]string{
		{"1", "Potion, Hi", "20"},
		{"2", "Multi\nline", "21"},
		{"3", "Ether", "22"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %q, got %q", want, rows)
	}
}

func TestReadTable_HeaderOnly(t *testing.T) {
	rows, err := ReadTable(strings.NewReader("key,Icon\n"))
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %q", rows)
	}
}

func TestReadTable_BOMBeforeHeader(t *testing.T) {
	rows, err := ReadTable(strings.NewReader("\ufeff#,Icon\n5,10\n"))
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "5" {
		t.Errorf("expected single row starting with 5, got %q", rows)
	}
}
