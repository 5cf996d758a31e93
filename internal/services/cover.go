package services

import (
  "bytes"
  "context"
  "fmt"
  "image/color"
  "math"
  "math/rand"
  "os"
  "strings"
  "unicode/utf8"

  "github.com/disintegration/imaging"
  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "golang.org/x/image/font"

  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/types"
)

// CoverService paints a placeholder cover image for a study kit and pushes
// it to the bucket, so every kit has artwork before the user uploads any.
type CoverService interface {
  CreateAndUploadStudyKitCover(ctx context.Context, kit *types.StudyKit) error
  GenerateStudyKitCover(ctx context.Context, kit *types.StudyKit) (bytes.Buffer, error)
  DeleteStudyKitCover(ctx context.Context, kit *types.StudyKit) error
}

type coverService struct {
  log           *logger.Logger
  bucketService BucketService
  bgColors      []color.NRGBA
  fontFace      font.Face
}

func NewCoverService(log *logger.Logger, bucketService BucketService) (CoverService, error) {
  serviceLog := log.With("service", "CoverService")

  fontPath := os.Getenv("COVER_FONT")
  if fontPath == "" {
    return nil, fmt.Errorf("env var COVER_FONT is empty")
  }
  serviceLog.Info("Loading cover font from TTF file", "font", fontPath)
  face, err := loadFontFace(fontPath, 220)
  if err != nil {
    return nil, fmt.Errorf("could not load cover font: %w", err)
  }

  return &coverService{
    log:           serviceLog,
    bucketService: bucketService,
    bgColors: []color.NRGBA{
      {R: 52, G: 120, B: 246, A: 255},
      {R: 233, G: 86, B: 94, A: 255},
      {R: 46, G: 160, B: 109, A: 255},
      {R: 154, G: 92, B: 228, A: 255},
      {R: 240, G: 144, B: 55, A: 255},
      {R: 38, G: 132, B: 153, A: 255},
    },
    fontFace: face,
  }, nil
}

func (cs *coverService) CreateAndUploadStudyKitCover(ctx context.Context, kit *types.StudyKit) error {
  buf, err := cs.GenerateStudyKitCover(ctx, kit)
  if err != nil {
    cs.log.Error("Failed to generate study kit cover", "error", err, "kitID", kit.ID)
    return err
  }
  key := fmt.Sprintf("study-kit-covers/%s.png", kit.ID)
  if err := cs.bucketService.UploadFile(ctx, key, &buf); err != nil {
    cs.log.Error("Failed to upload study kit cover", "error", err, "kitID", kit.ID)
    return err
  }
  url := cs.bucketService.GetPublicURL(key)
  kit.ImageURL = &url
  kit.CoverBucketKey = key
  cs.log.Info("Study kit cover uploaded :)", "kitID", kit.ID, "key", key)
  return nil
}

func (cs *coverService) GenerateStudyKitCover(ctx context.Context, kit *types.StudyKit) (bytes.Buffer, error) {
  const width, height = 1600, 900

  dc := gg.NewContext(width, height)

  //1) Solid base color
  base := cs.bgColors[rand.Intn(len(cs.bgColors))]
  dc.SetColor(base)
  dc.DrawRectangle(0, 0, width, height)
  dc.Fill()

  //2) Darker band along the bottom for depth
  band := shiftColor(base, -0.18)
  dc.SetColor(band)
  dc.DrawRectangle(0, float64(height)*0.72, width, float64(height)*0.28)
  dc.Fill()

  //3) Title initials, centered
  initials := titleInitials(kit.Title)
  dc.SetFontFace(cs.fontFace)
  tw, th := dc.MeasureString(initials)
  cx, cy := float64(width)/2, float64(height)/2
  dc.SetColor(color.White)
  dc.DrawString(initials, cx-(tw/2), cy+(th/2)-20)

  //4) Downscale for a cleaner edge, then encode
  resized := imaging.Resize(dc.Image(), 1280, 720, imaging.Lanczos)

  var buf bytes.Buffer
  if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
    return buf, fmt.Errorf("failed to encode PNG: %w", err)
  }
  return buf, nil
}

func (cs *coverService) DeleteStudyKitCover(ctx context.Context, kit *types.StudyKit) error {
  if kit.CoverBucketKey == "" {
    return nil
  }
  if err := cs.bucketService.DeleteFile(ctx, kit.CoverBucketKey); err != nil {
    cs.log.Warn("Failed to delete study kit cover from bucket", "error", err, "key", kit.CoverBucketKey)
    return err
  }
  return nil
}

// titleInitials takes the first rune of the first two words. Rune-wise so
// multi-byte titles keep a valid initial.
func titleInitials(title string) string {
  words := strings.Fields(title)
  if len(words) == 0 {
    return "?"
  }
  first, _ := utf8.DecodeRuneInString(words[0])
  initials := strings.ToUpper(string(first))
  if len(words) > 1 {
    second, _ := utf8.DecodeRuneInString(words[1])
    initials += strings.ToUpper(string(second))
  }
  return initials
}

func shiftColor(c color.NRGBA, fraction float64) color.NRGBA {
  clamp := func(v float64) uint8 {
    return uint8(math.Max(0, math.Min(255, v)))
  }
  delta := 255.0 * fraction
  return color.NRGBA{
    R: clamp(float64(c.R) + delta),
    G: clamp(float64(c.G) + delta),
    B: clamp(float64(c.B) + delta),
    A: c.A,
  }
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
  fontBytes, err := os.ReadFile(fontPath)
  if err != nil {
    return nil, fmt.Errorf("failed to read font file: %w", err)
  }
  parsedFont, err := truetype.Parse(fontBytes)
  if err != nil {
    return nil, fmt.Errorf("failed to parse TTF: %w", err)
  }
  face := truetype.NewFace(parsedFont, &truetype.Options{
    Size: size,
  })
  return face, nil
}
