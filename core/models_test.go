package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain content", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestRecordKey_FieldBoundary(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collide
	if RecordKey("ab", "c") == RecordKey("a", "bc") {
		t.Errorf("RecordKey() ignored the field boundary")
	}
}

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		action     string
		summary    string
		link       string
		wantTool   string
		wantAction string
		wantText   string
	}{
		{
			name:       "already clean",
			tool:       "GitLab",
			action:     "Merge Request",
			summary:    "Review merge requests",
			link:       "https://confluence.company.com/gitlab-mr",
			wantTool:   "GitLab",
			wantAction: "Merge Request",
			wantText:   "GitLab Merge Request Review merge requests",
		},
		{
			name:       "surrounding whitespace is trimmed",
			tool:       "  Jira ",
			action:     "\tProject Setup\n",
			summary:    " Create projects ",
			link:       " https://confluence.company.com/jira-setup ",
			wantTool:   "Jira",
			wantAction: "Project Setup",
			wantText:   "Jira Project Setup Create projects",
		},
		{
			name:       "empty summary keeps separators",
			tool:       "Nexus",
			action:     "Cleanup",
			summary:    "",
			wantTool:   "Nexus",
			wantAction: "Cleanup",
			wantText:   "Nexus Cleanup ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRecord(tt.tool, tt.action, tt.summary, tt.link)
			if got.Tool != tt.wantTool {
				t.Errorf("Tool = %q, want %q", got.Tool, tt.wantTool)
			}
			if got.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", got.Action, tt.wantAction)
			}
			if got.SearchableText != tt.wantText {
				t.Errorf("SearchableText = %q, want %q", got.SearchableText, tt.wantText)
			}
			if got.Id != RecordKey(tt.wantTool, tt.wantAction) {
				t.Errorf("Id = %d, want key of trimmed tool and action", got.Id)
			}
		})
	}
}

func TestCorpus_Texts(t *testing.T) {
	corpus := Corpus{
		NewRecord("GitLab", "Merge Request", "Review", ""),
		NewRecord("Jira", "Project Setup", "Create", ""),
	}

	texts := corpus.Texts()
	if len(texts) != 2 {
		t.Fatalf("Texts() returned %d entries, want 2", len(texts))
	}
	if texts[0] != "GitLab Merge Request Review" || texts[1] != "Jira Project Setup Create" {
		t.Errorf("Texts() = %v, not in corpus order", texts)
	}
	if corpus.IsEmpty() || corpus.Len() != 2 {
		t.Errorf("Len() = %d, IsEmpty() = %v", corpus.Len(), corpus.IsEmpty())
	}
	if !Corpus(nil).IsEmpty() {
		t.Errorf("nil corpus should be empty")
	}
}

func TestRankedResult_Accessors(t *testing.T) {
	result := RankedResult{
		Record: NewRecord("SonarQube", "Quality Gates", "Configure gates", "https://x"),
		Score:  0.5,
	}

	if result.Tool() != "SonarQube" || result.Action() != "Quality Gates" ||
		result.Summary() != "Configure gates" || result.Link() != "https://x" {
		t.Errorf("accessors returned %q %q %q %q", result.Tool(), result.Action(), result.Summary(), result.Link())
	}
}
