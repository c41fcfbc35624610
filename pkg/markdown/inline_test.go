package markdown

import (
	"reflect"
	"testing"
)

func TestSegmentInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []InlineRun
	}{
		{
			name: "plain text",
			in:   "just words",
			want: []InlineRun{{Text: "just words"}},
		},
		{
			name: "bold",
			in:   "a **b** c",
			want: []InlineRun{{Text: "a "}, {Text: "b", Bold: true}, {Text: " c"}},
		},
		{
			name: "italic",
			in:   "a *b* c",
			want: []InlineRun{{Text: "a "}, {Text: "b", Italic: true}, {Text: " c"}},
		},
		{
			name: "code",
			in:   "run `go test` now",
			want: []InlineRun{{Text: "run "}, {Text: "go test", Code: true}, {Text: " now"}},
		},
		{
			name: "all three in one line",
			in:   "**b** *i* `c`",
			want: []InlineRun{
				{Text: "b", Bold: true},
				{Text: " "},
				{Text: "i", Italic: true},
				{Text: " "},
				{Text: "c", Code: true},
			},
		},
		{
			name: "bold wins over italic at same index",
			in:   "**bold** tail",
			want: []InlineRun{{Text: "bold", Bold: true}, {Text: " tail"}},
		},
		{
			name: "inner markers stay literal inside an earlier span",
			in:   "**a *b* c** d",
			want: []InlineRun{{Text: "a *b* c", Bold: true}, {Text: " d"}},
		},
		{
			name: "unclosed bold is literal",
			in:   "a **b c",
			want: []InlineRun{{Text: "a **b c"}},
		},
		{
			name: "unclosed code is literal",
			in:   "tick ` alone",
			want: []InlineRun{{Text: "tick ` alone"}},
		},
		{
			name: "empty string",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentInline(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SegmentInline(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		kind LineKind
		text string
	}{
		{"", LineBlank, ""},
		{"   ", LineBlank, ""},
		{"# Title", LineHeading, "Title"},
		{"## Sub", LineHeading, "Sub"},
		{"### Deep", LineHeading, "Deep"},
		{"#### too deep", LineText, "#### too deep"},
		{"| a | b |", LineTableRow, "| a | b |"},
		{"- item", LineBullet, "item"},
		{"* item", LineBullet, "item"},
		{"3. third", LineNumbered, "third"},
		{"<!-- chart-options {} -->", LineComment, "<!-- chart-options {} -->"},
		{"<!-- Toggle: Switch to Chart [Count] -->", LineComment, "<!-- Toggle: Switch to Chart [Count] -->"},
		{"ordinary prose", LineText, "ordinary prose"},
	}

	for _, tt := range tests {
		got := Classify(tt.in)
		if got.Kind != tt.kind {
			t.Errorf("Classify(%q).Kind = %d, want %d", tt.in, got.Kind, tt.kind)
			continue
		}
		if got.Kind != LineBlank && got.Text != tt.text {
			t.Errorf("Classify(%q).Text = %q, want %q", tt.in, got.Text, tt.text)
		}
	}
}

func TestClassifyHeadingLevels(t *testing.T) {
	for level, in := range map[int]string{1: "# a", 2: "## a", 3: "### a"} {
		got := Classify(in)
		if got.Level != level {
			t.Errorf("Classify(%q).Level = %d, want %d", in, got.Level, level)
		}
	}
}

func TestClassifyImage(t *testing.T) {
	got := Classify("![Chart](data:image/png;base64,AAAA)")
	if got.Kind != LineImage {
		t.Fatalf("Kind = %d, want LineImage", got.Kind)
	}
	if got.Alt != "Chart" {
		t.Errorf("Alt = %q, want Chart", got.Alt)
	}
	if got.Src != "data:image/png;base64,AAAA" {
		t.Errorf("Src = %q", got.Src)
	}
}

func TestStripEditableSpans(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single span",
			in:   "before <EDITABLE span-id='a1'>inner</EDITABLE> after",
			want: "before inner after",
		},
		{
			name: "multiple spans",
			in:   "<EDITABLE span-id='a'>x</EDITABLE> and <EDITABLE span-id='b'>y</EDITABLE>",
			want: "x and y",
		},
		{
			name: "no spans",
			in:   "plain",
			want: "plain",
		},
		{
			name: "unclosed span left alone",
			in:   "<EDITABLE span-id='a'>dangling",
			want: "<EDITABLE span-id='a'>dangling",
		},
		{
			name: "lowercase tolerated",
			in:   "<editable span-id='a'>x</editable>",
			want: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripEditableSpans(tt.in); got != tt.want {
				t.Errorf("StripEditableSpans(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
