package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/extract"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/repos"
  "github.com/ainstein-org/ainstein-backend/internal/types"
)

// GenerationService runs the conversation-to-content pipeline: assemble
// context, call the model, pull structure back out, persist.
type GenerationService interface {
  SendMessage(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID, message string, attachment *MessageAttachment) (*SendMessageResult, error)
  GenerateQuiz(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID, topic string, questionCount int) (*QuizGenerated, error)
  GenerateFlashcards(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID, topic string, cardCount int) (*FlashcardsGenerated, error)
  GenerateVideo(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID, input VideoGenerationInput) (*VideoGenerated, error)
}

// VideoGenerationInput narrows the explainer video: all fields optional.
type VideoGenerationInput struct {
  Title         string `json:"title"`
  Topic         string `json:"topic"`
  Prompt        string `json:"prompt"`
  LengthSeconds int    `json:"length"`
}

type MessageAttachment struct {
  MimeType string `json:"mimeType"`
  Data     string `json:"data"`
}

type SendMessageResult struct {
  UserMessage      *types.ConversationMessage `json:"userMessage"`
  AssistantMessage *types.ConversationMessage `json:"assistantMessage"`
}

type QuizGenerated struct {
  QuizID        uuid.UUID `json:"quizId"`
  Title         string    `json:"title"`
  QuestionCount int       `json:"questionCount"`
}

type FlashcardsGenerated struct {
  FlashcardIDs []uuid.UUID `json:"flashcardIds"`
  Count        int         `json:"count"`
}

type VideoGenerated struct {
  VideoID         uuid.UUID `json:"videoId"`
  Title           string    `json:"title"`
  URL             string    `json:"url"`
  ThumbnailURL    string    `json:"thumbnailUrl"`
  DurationSeconds float64   `json:"durationSeconds"`
}

type generationService struct {
  db               *gorm.DB
  log              *logger.Logger
  conversationRepo repos.ConversationRepo
  messageRepo      repos.ConversationMessageRepo
  studyKitRepo     repos.StudyKitRepo
  quizRepo         repos.QuizRepo
  flashcardRepo    repos.FlashcardRepo
  videoRepo        repos.VideoRepo
  generator        TextGenerator
  renderer         RenderService
}

func NewGenerationService(
  db *gorm.DB,
  log *logger.Logger,
  conversationRepo repos.ConversationRepo,
  messageRepo repos.ConversationMessageRepo,
  studyKitRepo repos.StudyKitRepo,
  quizRepo repos.QuizRepo,
  flashcardRepo repos.FlashcardRepo,
  videoRepo repos.VideoRepo,
  generator TextGenerator,
  renderer RenderService,
) GenerationService {
  serviceLog := log.With("service", "GenerationService")
  return &generationService{
    db:               db,
    log:              serviceLog,
    conversationRepo: conversationRepo,
    messageRepo:      messageRepo,
    studyKitRepo:     studyKitRepo,
    quizRepo:         quizRepo,
    flashcardRepo:    flashcardRepo,
    videoRepo:        videoRepo,
    generator:        generator,
    renderer:         renderer,
  }
}

// loadOwnedConversation fetches the conversation and enforces ownership
// before anything touches the model. A kit that exists but belongs to
// someone else looks identical to one that does not exist.
func (gs *generationService) loadOwnedConversation(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID) (*types.Conversation, *types.StudyKit, error) {
  conversations, err := gs.conversationRepo.GetByIDs(ctx, nil, []uuid.UUID{conversationID})
  if err != nil {
    return nil, nil, errordata.Internal("Failed to fetch conversation", err)
  }
  if len(conversations) == 0 || conversations[0].UserID != userID {
    return nil, nil, errordata.NotFound("Conversation not found")
  }
  conversation := conversations[0]

  kits, err := gs.studyKitRepo.GetByIDs(ctx, nil, []uuid.UUID{conversation.StudyKitID})
  if err != nil {
    return nil, nil, errordata.Internal("Failed to fetch study kit", err)
  }
  if len(kits) == 0 {
    return nil, nil, errordata.NotFound("Study kit not found")
  }
  return conversation, kits[0], nil
}

func (gs *generationService) recentHistory(ctx context.Context, conversationID uuid.UUID) ([]*types.ConversationMessage, error) {
  history, err := gs.messageRepo.GetRecentByConversationID(ctx, nil, conversationID, historyContextLimit)
  if err != nil {
    return nil, errordata.Internal("Failed to fetch conversation history", err)
  }
  return history, nil
}

// historyAsTranscript flattens messages into "speaker: text" lines for the
// structured-generation prompts.
func historyAsTranscript(history []*types.ConversationMessage) string {
  var sb strings.Builder
  for _, m := range history {
    sb.WriteString(m.Speaker)
    sb.WriteString(": ")
    sb.WriteString(m.MessageText)
    sb.WriteString("\n")
  }
  return sb.String()
}

func historyAsContents(history []*types.ConversationMessage) []GeminiContent {
  contents := make([]GeminiContent, 0, len(history))
  for _, m := range history {
    role := "user"
    if m.Speaker == types.SpeakerAssistant {
      role = "model"
    }
    contents = append(contents, GeminiContent{
      Role:  role,
      Parts: []GeminiPart{{Text: m.MessageText}},
    })
  }
  return contents
}

func (gs *generationService) SendMessage(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID, message string, attachment *MessageAttachment) (*SendMessageResult, error) {
  gs.log.Info("Starting SendMessage now...", "conversationID", conversationID)

  if strings.TrimSpace(message) == "" {
    return nil, errordata.BadRequest("Message cannot be empty")
  }

  conversation, kit, err := gs.loadOwnedConversation(ctx, userID, conversationID)
  if err != nil {
    return nil, err
  }
  history, err := gs.recentHistory(ctx, conversation.ID)
  if err != nil {
    return nil, err
  }

  // The new user message rides along as the final turn only; it is not
  // persisted before the model call, so it never shows up twice in context.
  userParts := []GeminiPart{{Text: message}}
  if attachment != nil && attachment.Data != "" {
    userParts = append(userParts, GeminiPart{
      InlineData: &GeminiInlineData{
        MimeType: attachment.MimeType,
        Data:     attachment.Data,
      },
    })
  }
  contents := append(historyAsContents(history), GeminiContent{Role: "user", Parts: userParts})

  kitDescription := ""
  if kit.Description != nil {
    kitDescription = *kit.Description
  }
  reply, err := gs.generator.Generate(ctx, GenerateRequest{
    SystemInstruction: TutorSystemPrompt(kit.Title, kitDescription),
    Contents:          contents,
    Temperature:       chatTemperature,
    MaxOutputTokens:   chatMaxTokens,
  })
  if err != nil {
    gs.log.Error("Chat generation failed", "error", err)
    return nil, errordata.Upstream("Failed to generate response", err)
  }

  userMessage := &types.ConversationMessage{
    ConversationID: conversation.ID,
    Speaker:        types.SpeakerUser,
    MessageText:    message,
  }
  if attachment != nil && attachment.Data != "" {
    raw, mErr := json.Marshal(attachment)
    if mErr != nil {
      return nil, errordata.Internal("Failed to encode attachment", mErr)
    }
    userMessage.Attachment = datatypes.JSON(raw)
  }
  assistantMessage := &types.ConversationMessage{
    ConversationID: conversation.ID,
    Speaker:        types.SpeakerAssistant,
    MessageText:    reply,
  }
  if err := gs.messageRepo.AppendExchange(ctx, nil, userMessage, assistantMessage); err != nil {
    return nil, errordata.Internal("Failed to store conversation exchange", err)
  }

  gs.log.Info("SendMessage completed successfully :)", "conversationID", conversation.ID)
  return &SendMessageResult{
    UserMessage:      userMessage,
    AssistantMessage: assistantMessage,
  }, nil
}

type quizPayload struct {
  Title       string `json:"title"`
  Description string `json:"description"`
  Questions   []struct {
    QuestionText string `json:"questionText"`
    QuestionType string `json:"questionType"`
    Answers      []struct {
      AnswerText string `json:"answerText"`
      IsCorrect  bool   `json:"isCorrect"`
    } `json:"answers"`
  } `json:"questions"`
}

func (gs *generationService) GenerateQuiz(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID, topic string, questionCount int) (*QuizGenerated, error) {
  gs.log.Info("Starting GenerateQuiz now...", "conversationID", conversationID, "topic", topic, "questionCount", questionCount)

  conversation, _, err := gs.loadOwnedConversation(ctx, userID, conversationID)
  if err != nil {
    return nil, err
  }
  history, err := gs.recentHistory(ctx, conversation.ID)
  if err != nil {
    return nil, err
  }
  if len(history) == 0 {
    return nil, errordata.BadRequest("Conversation has no messages to generate from")
  }

  count := clampQuestionCount(questionCount)
  prompt := QuizPrompt(historyAsTranscript(history), topic, count)
  raw, err := gs.generator.Generate(ctx, GenerateRequest{
    Contents:        []GeminiContent{{Role: "user", Parts: []GeminiPart{{Text: prompt}}}},
    Temperature:     quizTemperature,
    MaxOutputTokens: quizMaxTokens,
  })
  if err != nil {
    gs.log.Error("Quiz generation failed", "error", err)
    return nil, errordata.Upstream("Failed to generate quiz", err)
  }

  var payload quizPayload
  if err := extract.JSON(raw, &payload); err != nil {
    gs.log.Error("Quiz output failed to parse", "error", err)
    return nil, errordata.FormatError("generation-format error", err)
  }
  if len(payload.Questions) == 0 {
    return nil, errordata.FormatError("generation-format error", fmt.Errorf("quiz payload has no questions"))
  }

  quiz := &types.Quiz{
    StudyKitID: conversation.StudyKitID,
    Title:      payload.Title,
  }
  if payload.Description != "" {
    description := payload.Description
    quiz.Description = &description
  }
  for _, q := range payload.Questions {
    correct := 0
    for _, a := range q.Answers {
      if a.IsCorrect {
        correct++
      }
    }
    if correct != 1 {
      return nil, errordata.FormatError("generation-format error", fmt.Errorf("question %q has %d correct answers", q.QuestionText, correct))
    }
    questionType := q.QuestionType
    if questionType == "" {
      questionType = "multiple_choice"
    }
    question := types.QuizQuestion{
      QuestionText: q.QuestionText,
      QuestionType: questionType,
    }
    for _, a := range q.Answers {
      question.Answers = append(question.Answers, types.QuizAnswer{
        AnswerText: a.AnswerText,
        IsCorrect:  a.IsCorrect,
      })
    }
    quiz.Questions = append(quiz.Questions, question)
  }

  created, err := gs.quizRepo.CreateWithQuestions(ctx, nil, quiz)
  if err != nil {
    return nil, errordata.Internal("Failed to store generated quiz", err)
  }

  gs.log.Info("GenerateQuiz completed successfully :)", "quizID", created.ID, "questionCount", len(created.Questions))
  return &QuizGenerated{
    QuizID:        created.ID,
    Title:         created.Title,
    QuestionCount: len(created.Questions),
  }, nil
}

type flashcardPayload struct {
  FrontText string `json:"frontText"`
  BackText  string `json:"backText"`
}

func (gs *generationService) GenerateFlashcards(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID, topic string, cardCount int) (*FlashcardsGenerated, error) {
  gs.log.Info("Starting GenerateFlashcards now...", "conversationID", conversationID, "topic", topic, "cardCount", cardCount)

  conversation, _, err := gs.loadOwnedConversation(ctx, userID, conversationID)
  if err != nil {
    return nil, err
  }
  history, err := gs.recentHistory(ctx, conversation.ID)
  if err != nil {
    return nil, err
  }
  if len(history) == 0 {
    return nil, errordata.BadRequest("Conversation has no messages to generate from")
  }

  count := clampCardCount(cardCount)
  prompt := FlashcardPrompt(historyAsTranscript(history), topic, count)
  raw, err := gs.generator.Generate(ctx, GenerateRequest{
    Contents:        []GeminiContent{{Role: "user", Parts: []GeminiPart{{Text: prompt}}}},
    Temperature:     quizTemperature,
    MaxOutputTokens: quizMaxTokens,
  })
  if err != nil {
    gs.log.Error("Flashcard generation failed", "error", err)
    return nil, errordata.Upstream("Failed to generate flashcards", err)
  }

  var payload []flashcardPayload
  if err := extract.JSON(raw, &payload); err != nil {
    gs.log.Error("Flashcard output failed to parse", "error", err)
    return nil, errordata.FormatError("generation-format error", err)
  }
  if len(payload) == 0 {
    return nil, errordata.FormatError("generation-format error", fmt.Errorf("flashcard payload is empty"))
  }

  cards := make([]*types.Flashcard, 0, len(payload))
  for _, p := range payload {
    cards = append(cards, &types.Flashcard{
      StudyKitID: conversation.StudyKitID,
      FrontText:  p.FrontText,
      BackText:   p.BackText,
    })
  }
  created, err := gs.flashcardRepo.Create(ctx, nil, cards)
  if err != nil {
    return nil, errordata.Internal("Failed to store generated flashcards", err)
  }

  ids := make([]uuid.UUID, 0, len(created))
  for _, c := range created {
    ids = append(ids, c.ID)
  }
  gs.log.Info("GenerateFlashcards completed successfully :)", "count", len(ids))
  return &FlashcardsGenerated{
    FlashcardIDs: ids,
    Count:        len(ids),
  }, nil
}

func (gs *generationService) GenerateVideo(ctx context.Context, userID uuid.UUID, conversationID uuid.UUID, input VideoGenerationInput) (*VideoGenerated, error) {
  gs.log.Info("Starting GenerateVideo now...", "conversationID", conversationID, "topic", input.Topic)

  conversation, kit, err := gs.loadOwnedConversation(ctx, userID, conversationID)
  if err != nil {
    return nil, err
  }
  history, err := gs.recentHistory(ctx, conversation.ID)
  if err != nil {
    return nil, err
  }
  if len(history) == 0 {
    return nil, errordata.BadRequest("Conversation has no messages to generate from")
  }

  raw, err := gs.generator.Generate(ctx, GenerateRequest{
    SystemInstruction: VideoScriptSystemPrompt,
    Contents:          []GeminiContent{{Role: "user", Parts: []GeminiPart{{Text: VideoScriptPrompt(historyAsTranscript(history), input.Topic, input.Prompt, input.LengthSeconds)}}}},
    Temperature:       videoTemperature,
  })
  if err != nil {
    gs.log.Error("Video script generation failed", "error", err)
    return nil, errordata.Upstream("Failed to generate video script", err)
  }

  code := extract.Code(raw, "python")
  if code == "" {
    return nil, errordata.FormatError("generation-format error", fmt.Errorf("video script output is empty"))
  }

  rendered, err := gs.renderer.Render(ctx, code)
  if err != nil {
    gs.log.Error("Video rendering failed", "error", err)
    return nil, errordata.From(err)
  }

  title := input.Title
  if title == "" {
    title = fmt.Sprintf("Video penjelasan: %s", kit.Title)
  }
  video := &types.Video{
    StudyKitID:      conversation.StudyKitID,
    UserID:          userID,
    Title:           title,
    URL:             rendered.VideoURL,
    ThumbnailURL:    rendered.ThumbnailURL,
    DurationSeconds: rendered.DurationSeconds,
  }
  created, err := gs.videoRepo.Create(ctx, nil, video)
  if err != nil {
    return nil, errordata.Internal("Failed to store generated video", err)
  }

  gs.log.Info("GenerateVideo completed successfully :)", "videoID", created.ID)
  return &VideoGenerated{
    VideoID:         created.ID,
    Title:           created.Title,
    URL:             created.URL,
    ThumbnailURL:    created.ThumbnailURL,
    DurationSeconds: created.DurationSeconds,
  }, nil
}
