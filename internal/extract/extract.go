// Package extract recovers structured payloads from freeform model output.
// Models wrap answers in code fences, prose, or both; these helpers pull the
// usable part back out without ever panicking on malformed input.
package extract

import (
  "encoding/json"
  "fmt"
  "regexp"
  "strings"
)

// FormatError reports that a model reply could not be coerced into the
// structure the caller asked for. The raw candidate text is kept so the
// caller can log what the model actually said.
type FormatError struct {
  Candidate string
  Err       error
}

func (e *FormatError) Error() string {
  return fmt.Sprintf("generation-format error: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
  return e.Err
}

var (
  jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*)```")
)

// JSONCandidate returns the substring of raw most likely to be a JSON
// document. It prefers a fenced block (tagged json or untagged), then falls
// back to scanning for the outermost bracket pair, and finally returns the
// trimmed input unchanged so the caller's json parse surfaces the failure.
func JSONCandidate(raw string) string {
  if m := jsonFenceRe.FindStringSubmatch(raw); m != nil {
    return strings.TrimSpace(m[1])
  }

  arrStart := strings.Index(raw, "[")
  objStart := strings.Index(raw, "{")
  start, close := arrStart, "]"
  // -1 means the bracket never appears, which loses to any real position.
  if arrStart == -1 || (objStart != -1 && objStart < arrStart) {
    start, close = objStart, "}"
  }
  if start == -1 {
    return strings.TrimSpace(raw)
  }
  end := strings.LastIndex(raw, close)
  if end <= start {
    return strings.TrimSpace(raw)
  }
  return strings.TrimSpace(raw[start : end+1])
}

// JSON extracts the JSON payload from raw and unmarshals it into v.
// A failure to parse is returned as a *FormatError, never a panic.
func JSON(raw string, v interface{}) error {
  candidate := JSONCandidate(raw)
  if err := json.Unmarshal([]byte(candidate), v); err != nil {
    return &FormatError{Candidate: candidate, Err: err}
  }
  return nil
}

// Code returns the contents of the first fenced block tagged with lang,
// with the fence markers and a single leading newline stripped. When no
// tagged fence is present the trimmed input is returned verbatim; callers
// must treat an empty result as failure.
func Code(raw string, lang string) string {
  fenceRe := regexp.MustCompile("(?s)```" + regexp.QuoteMeta(lang) + "(.*?)```")
  m := fenceRe.FindStringSubmatch(raw)
  if m == nil {
    return strings.TrimSpace(raw)
  }
  inner := strings.TrimPrefix(m[1], "\n")
  return strings.TrimSpace(inner)
}
