package services

import (
  "fmt"
)

// Decoding parameters per task. Chat stays loose, structured output runs
// cold so the JSON contract survives.
const (
  chatTemperature  = 0.7
  chatMaxTokens    = 1000
  quizTemperature  = 0.3
  quizMaxTokens    = 2000
  videoTemperature = 0.2

  historyContextLimit = 10

  minQuestionCount     = 1
  maxQuestionCount     = 20
  defaultQuestionCount = 5
  minCardCount         = 1
  maxCardCount         = 50
  defaultCardCount     = 10
)

func clampQuestionCount(n int) int {
  if n <= 0 {
    return defaultQuestionCount
  }
  if n < minQuestionCount {
    return minQuestionCount
  }
  if n > maxQuestionCount {
    return maxQuestionCount
  }
  return n
}

func clampCardCount(n int) int {
  if n <= 0 {
    return defaultCardCount
  }
  if n < minCardCount {
    return minCardCount
  }
  if n > maxCardCount {
    return maxCardCount
  }
  return n
}

// TutorSystemPrompt frames the assistant as an Indonesian-language study
// tutor scoped to one study kit.
func TutorSystemPrompt(kitTitle string, kitDescription string) string {
  if kitDescription == "" {
    kitDescription = "Tidak ada deskripsi yang disediakan"
  }
  return fmt.Sprintf(`Kamu adalah tutor AI yang membantu siswa dengan materi belajar mereka: "%s".

Deskripsi Materi Belajar: %s

Kamu harus:
- Memberikan respon yang membantu dan edukatif terkait materi belajar
- Mengajukan pertanyaan klarifikasi untuk lebih memahami kebutuhan siswa
- Menawarkan penjelasan, contoh, dan panduan
- Bersikap mendorong dan suportif
- Tetap fokus pada konten edukasi
- WAJIB merespons dalam Bahasa Indonesia

Buatlah respon yang ringkas namun informatif.`, kitTitle, kitDescription)
}

// QuizPrompt demands a strict JSON object built from the conversation so
// far. The extractor downstream tolerates fences, the prompt still asks
// for bare JSON to keep the model honest.
func QuizPrompt(conversationContext string, topic string, questionCount int) string {
  focus := ""
  if topic != "" {
    focus = fmt.Sprintf("\nFokuskan kuis pada topik: %q.\n", topic)
  }
  return fmt.Sprintf(`Berdasarkan percakapan belajar berikut, buatlah kuis dengan tepat %d pertanyaan.
%s
Percakapan:
%s

Balas HANYA dengan objek JSON valid berstruktur persis seperti ini, tanpa teks lain:
{
  "title": "judul kuis",
  "description": "deskripsi singkat",
  "questions": [
    {
      "questionText": "teks pertanyaan",
      "questionType": "multiple_choice",
      "answers": [
        {"answerText": "pilihan jawaban", "isCorrect": true},
        {"answerText": "pilihan jawaban", "isCorrect": false}
      ]
    }
  ]
}

Aturan:
- Tepat %d pertanyaan
- Setiap pertanyaan memiliki TEPAT SATU jawaban dengan isCorrect true
- Seluruh teks dalam Bahasa Indonesia`, questionCount, focus, conversationContext, questionCount)
}

// FlashcardPrompt demands a strict JSON array of front/back pairs.
func FlashcardPrompt(conversationContext string, topic string, cardCount int) string {
  focus := ""
  if topic != "" {
    focus = fmt.Sprintf("\nFokuskan kartu pada topik: %q.\n", topic)
  }
  return fmt.Sprintf(`Berdasarkan percakapan belajar berikut, buatlah tepat %d kartu hafalan (flashcard).
%s
Percakapan:
%s

Balas HANYA dengan array JSON valid berstruktur persis seperti ini, tanpa teks lain:
[
  {"frontText": "pertanyaan atau istilah", "backText": "jawaban atau penjelasan"}
]

Aturan:
- Tepat %d kartu
- Seluruh teks dalam Bahasa Indonesia`, cardCount, focus, conversationContext, cardCount)
}

// VideoScriptSystemPrompt is the style guide for generated animation
// scripts. The output is executed by the render function as-is, so the
// prompt forbids anything outside one python code fence.
const VideoScriptSystemPrompt = `You are an expert Manim developer. Generate a complete, self-contained Python script using Manim (and optionally manim_physics and manim_voiceover) to visually explain the user's prompt. The goal is to produce visually consistent, technically accurate, and narratively engaging animations.

GENERAL REQUIREMENTS:
1. No External Dependencies:
   - Do not use any external files, URLs, or assets. Use only built-in Manim resources.
2. Accurate API Usage:
   - Use only valid attributes and methods.
   - Match all parameter types exactly.
   - Avoid deprecated or incorrect APIs.
3. Prevent Frame Overlap:
   - Call self.clear() or otherwise reset the scene before adding new content.
   - Ensure transitions are clean and visuals never stack incorrectly.
4. Real-World Visualization:
   - Use intuitive analogies or real-world visual representations when helpful (e.g., graphs, forces, motions, geometry).
5. Voiceover Integration:
   - Use manim_voiceover to narrate.
   - Speak naturally—do not read the on-screen text verbatim.
   - Sync timing between narration and animation for clarity.
6. Text Visibility:
   - All text must remain fully visible within frame boundaries.
   - Scale down or reposition long equations or titles to avoid clipping.
   - Do not place text too close to the edges of the screen.
7. Concise, Minimal Code:
   - Avoid comments, blank lines, or unnecessary repetition.
   - Prioritize compact, readable code.
8. Effective Visual Hierarchy:
   - Use color, motion, size, and layering to draw attention to key concepts.
   - Avoid placing text directly over complex visuals like graphs or shapes.
   - Use .to_corner(), .next_to(), or .shift() to ensure readable layout.
9. Timing and Pacing:
   - Eliminate unnecessary .wait() calls.
   - Minimize dead time between animations unless explicitly needed for clarity.
   - Sync animation duration with narration naturally.
10. Complete Scene Class:
   - Output a fully structured VoiceoverScene class that is ready to render.
11. Duration:
   - Make sure the user really understand your explanation by having the duration for at least one minute.
12. No extra explanation. The response will be executed by a lambda function rightaway, please do not add extra sentence or explanations, just straight up python code.


MATH-SPECIFIC REQUIREMENTS:
- Use MathTex and SurroundingRectangle to clearly highlight important equations or transformations.
- For functions and graphs, use Axes and always_redraw when demonstrating dynamic behavior.
- Represent abstract concepts with geometric or symbolic analogies (e.g., vectors, transformations, limits).
- Maintain mathematical rigor; notation must follow LaTeX standards.
- Prioritize clarity in step-by-step derivations or proofs.

PHYSICS-SPECIFIC REQUIREMENTS:
- Incorporate vector arrows, coordinate axes, and dynamic motion paths to represent forces and trajectories.
- Clearly label all quantities (velocity, force, acceleration) using LaTeX or Label.
- Prefer animated interactions between objects (collisions, field lines, springs) to static diagrams.
- Ensure unit consistency and visually distinguish different physical quantities (e.g., using color or labels).

CHEMISTRY-SPECIFIC REQUIREMENTS:
- Do not use SVGMobject because the file doesn't exist
- Use stylized atoms, molecules, or structural diagrams with Dot, Circle, or Group to represent molecular geometry.
- Use animations to illustrate electron movement, reaction steps, or molecular interactions.
- Clearly separate reactants and products with arrows, and optionally show energy diagrams or reaction coordinates.
- For periodic trends or atomic structure, use labeled grids, concentric shells, or animated transitions between elements.
- Emphasize key concepts like polarity, hybridization, or bond types through distinct visual cues and spatial arrangement.`

// VideoScriptPrompt asks for an animation script covering the topic the
// conversation has been circling. Topic, extra directions, and a target
// length are all optional.
func VideoScriptPrompt(conversationContext string, topic string, extraPrompt string, lengthSeconds int) string {
  subject := "the main topic discussed"
  if topic != "" {
    subject = fmt.Sprintf("the topic %q", topic)
  }
  directives := ""
  if lengthSeconds > 0 {
    directives += fmt.Sprintf("\nTarget a total duration of roughly %d seconds.", lengthSeconds)
  }
  if extraPrompt != "" {
    directives += fmt.Sprintf("\nAdditional directions from the student: %s", extraPrompt)
  }
  return fmt.Sprintf(`Based on the following study conversation, produce an animated explainer script for %s.

Conversation:
%s
%s
Respond with a single fenced python code block and nothing else.`, subject, conversationContext, directives)
}
