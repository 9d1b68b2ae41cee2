package generator

import "testing"

func TestCleanText(t *testing.T) {
	t.Parallel()

	in := "Aqui está o documento:\n\n# Title\n\n```json\n{\"a\":1}\n```\n\n[PROMPT: a cat]\nBody line.\n\n\n\nCopie o texto abaixo\nLast."
	want := "# Title\n\nBody line.\n\nLast."
	if got := CleanText(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCleanTextKeepsOrdinaryLines(t *testing.T) {
	t.Parallel()

	in := "There is a result.\nWhere is it?"
	if got := CleanText(in); got != in {
		t.Fatalf("ordinary lines were removed: %q", got)
	}
}

func TestCleanTextKeepsPhrasesInsideContent(t *testing.T) {
	t.Parallel()

	in := "## Model\nThe model is used to generate forecasts.\nWe copy the text of each clause verbatim.\nThe answer here is final."
	if got := CleanText(in); got != in {
		t.Fatalf("content lines were removed: %q", got)
	}

	if got := CleanText("**Here is** your report:\nRevenue grew."); got != "Revenue grew." {
		t.Fatalf("leading filler kept: %q", got)
	}
}
