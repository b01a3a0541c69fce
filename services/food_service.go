package services

import (
	"context"
	"log"
	"time"

	"titanfit/models"
)

// ImageUploader stores an uploaded image and returns its public URL.
// Satisfied by utils.S3Uploader.
type ImageUploader interface {
	UploadImage(ctx context.Context, data []byte, contentType, keyPrefix string) (string, error)
}

// FoodService drives the classify -> stage -> confirm/discard workflow.
type FoodService struct {
	advisor  Advisor
	rek      *RekognitionService
	uploader ImageUploader
	staging  *StagingStore
	ledger   *LedgerService
	tracker  *TrackerService
}

func NewFoodService(
	advisor Advisor,
	rek *RekognitionService,
	uploader ImageUploader,
	staging *StagingStore,
	ledger *LedgerService,
	tracker *TrackerService,
) *FoodService {
	return &FoodService{
		advisor:  advisor,
		rek:      rek,
		uploader: uploader,
		staging:  staging,
		ledger:   ledger,
		tracker:  tracker,
	}
}

// ClassifyText estimates nutrition from a description like "2 eggs and toast"
// and stages the result. Nothing is staged when classification fails.
func (s *FoodService) ClassifyText(ctx context.Context, userID uint, description string) (*Candidate, error) {
	cand, err := s.advisor.ClassifyText(ctx, description)
	if err != nil {
		return nil, err
	}
	s.staging.Put(userID, cand)
	return cand, nil
}

// ClassifyImage identifies the dish in an uploaded photo and stages the
// result. The image is stored first so the confirmed log can reference it;
// storage and label hints are best effort.
func (s *FoodService) ClassifyImage(ctx context.Context, userID uint, image []byte, contentType string) (*Candidate, error) {
	var imageRef string
	if s.uploader != nil {
		url, err := s.uploader.UploadImage(ctx, image, contentType, "food-images/upload")
		if err != nil {
			log.Printf("food image upload failed: %v", err)
		} else {
			imageRef = url
		}
	}

	var hints []string
	if s.rek != nil {
		labels, err := s.rek.RecognizeLabels(ctx, image)
		if err != nil {
			log.Printf("label detection failed: %v", err)
		} else {
			hints = labels
		}
	}

	cand, err := s.advisor.ClassifyImage(ctx, image, hints)
	if err != nil {
		return nil, err
	}
	cand.ImageRef = imageRef

	s.staging.Put(userID, cand)
	return cand, nil
}

// PendingView is the staged candidate plus the forward-looking safety check:
// would eating it keep the user within today's remaining calories?
type PendingView struct {
	Candidate *Candidate `json:"candidate"`
	Remaining int        `json:"remaining"`
	Safe      bool       `json:"safe"`
}

// Pending returns the staged candidate for display without consuming it.
// Remaining is evaluated before this candidate is added.
func (s *FoodService) Pending(userID uint) (*PendingView, error) {
	cand, ok := s.staging.Peek(userID)
	if !ok {
		return nil, ErrNothingPending
	}

	summary, err := s.tracker.DailyTotals(userID, time.Now())
	if err != nil {
		return nil, err
	}

	calories := 0
	if cand.Nutrition != nil {
		calories = cand.Nutrition.Calories
	}

	return &PendingView{
		Candidate: cand,
		Remaining: summary.Remaining,
		Safe:      calories <= summary.Remaining,
	}, nil
}

// Confirm consumes the staged candidate and persists it as a FoodLog. The
// slot is cleared atomically first, so a retried confirm finds it empty and
// returns ErrNothingPending instead of logging twice. A malformed nutrition
// block degrades to zeros.
func (s *FoodService) Confirm(userID uint) (*models.FoodLog, error) {
	cand, ok := s.staging.Take(userID)
	if !ok {
		return nil, ErrNothingPending
	}

	var n Nutrition
	if cand.Nutrition != nil {
		n = *cand.Nutrition
	}

	foodLog := &models.FoodLog{
		UserID:   userID,
		Name:     cand.Dish,
		Calories: clampInt(n.Calories),
		Protein:  clampFloat(n.Protein),
		Carbs:    clampFloat(n.Carbs),
		Fat:      clampFloat(n.Fat),
		ImageRef: cand.ImageRef,
	}
	if err := s.ledger.CreateFoodLog(foodLog); err != nil {
		// Re-stage so the user can retry after a transient store failure.
		s.staging.Put(userID, cand)
		return nil, err
	}
	return foodLog, nil
}

// Discard drops the staged candidate without persisting anything.
func (s *FoodService) Discard(userID uint) bool {
	return s.staging.Discard(userID)
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
