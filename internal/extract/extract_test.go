package extract

import (
  "errors"
  "testing"
)

func TestJSONCandidateFencedBlock(t *testing.T) {
  raw := "prefix ```json\n{\"a\":1}\n``` suffix"
  got := JSONCandidate(raw)
  if got != `{"a":1}` {
    t.Fatalf("expected fenced payload, got %q", got)
  }
}

func TestJSONCandidateUntaggedFence(t *testing.T) {
  raw := "```\n[{\"frontText\":\"q\",\"backText\":\"a\"}]\n```"
  got := JSONCandidate(raw)
  if got != `[{"frontText":"q","backText":"a"}]` {
    t.Fatalf("expected fenced payload, got %q", got)
  }
}

func TestJSONCandidateBareBrackets(t *testing.T) {
  raw := "no fences {\"a\":1} trailing"
  got := JSONCandidate(raw)
  if got != `{"a":1}` {
    t.Fatalf("expected bracket-scanned payload, got %q", got)
  }
}

func TestJSONCandidateArrayBeforeObject(t *testing.T) {
  raw := "here you go: [{\"a\":1},{\"a\":2}] done"
  got := JSONCandidate(raw)
  if got != `[{"a":1},{"a":2}]` {
    t.Fatalf("expected array payload, got %q", got)
  }
}

func TestJSONCandidateNoBrackets(t *testing.T) {
  raw := "  Sorry, I cannot help with that.  "
  got := JSONCandidate(raw)
  if got != "Sorry, I cannot help with that." {
    t.Fatalf("expected trimmed input, got %q", got)
  }
}

func TestJSONCandidateUnclosedBracket(t *testing.T) {
  raw := "broken {\"a\": 1"
  got := JSONCandidate(raw)
  if got != "broken {\"a\": 1" {
    t.Fatalf("expected trimmed input on unclosed bracket, got %q", got)
  }
}

func TestJSONUnmarshalsPayload(t *testing.T) {
  var v struct {
    A int `json:"a"`
  }
  if err := JSON("chatter {\"a\": 7} more chatter", &v); err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if v.A != 7 {
    t.Fatalf("expected a=7, got %d", v.A)
  }
}

func TestJSONFormatError(t *testing.T) {
  var v map[string]interface{}
  err := JSON("plain prose with no structure", &v)
  if err == nil {
    t.Fatal("expected an error for unparseable input")
  }
  var fe *FormatError
  if !errors.As(err, &fe) {
    t.Fatalf("expected *FormatError, got %T", err)
  }
  if fe.Candidate != "plain prose with no structure" {
    t.Fatalf("unexpected candidate %q", fe.Candidate)
  }
}

func TestCodeTaggedFence(t *testing.T) {
  raw := "Here is the script:\n```python\nfrom manim import *\n\nclass Scene1(Scene):\n    pass\n```\nEnjoy!"
  got := Code(raw, "python")
  want := "from manim import *\n\nclass Scene1(Scene):\n    pass"
  if got != want {
    t.Fatalf("expected %q, got %q", want, got)
  }
}

func TestCodeNoFence(t *testing.T) {
  raw := "  print(\"hello\")  "
  got := Code(raw, "python")
  if got != "print(\"hello\")" {
    t.Fatalf("expected trimmed input, got %q", got)
  }
}

func TestCodeWrongLanguageTag(t *testing.T) {
  raw := "```javascript\nconsole.log(1)\n```"
  got := Code(raw, "python")
  if got != raw {
    t.Fatalf("expected untouched input for mismatched tag, got %q", got)
  }
}
