package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pashameshi-backend/domain"
	"pashameshi-backend/entities"
	"pashameshi-backend/internal/utils/storage"
	"pashameshi-backend/pkg/groq"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		AnalyzeIngredient(ctx context.Context, req domain.AnalyzeIngredientRequest) (domain.AnalyzedIngredient, error)
		MergeIngredient(ctx context.Context, req domain.MergeIngredientRequest, scope domain.Scope) error
		ConsumeForRecipe(ctx context.Context, recipeIngredientLines []string, scope domain.Scope) (domain.ConsumeForRecipeResponse, error)
		GetStockItems(ctx context.Context, scope domain.Scope, storageType string) ([]domain.StockItemResponse, error)
		DeleteStockItem(ctx context.Context, id string, scope domain.Scope) error
		UploadStockImage(ctx context.Context, req domain.UploadStockImageRequest, scope domain.Scope) error
	}

	inventoryService struct {
		stockRepository StockRepository
		classifier      groq.GroqService
		s3              storage.AwsS3
	}
)

func NewInventoryService(stockRepository StockRepository, classifier groq.GroqService, s3 storage.AwsS3) InventoryService {
	return &inventoryService{
		stockRepository: stockRepository,
		classifier:      classifier,
		s3:              s3,
	}
}

func (s *inventoryService) AnalyzeIngredient(ctx context.Context, req domain.AnalyzeIngredientRequest) (domain.AnalyzedIngredient, error) {
	return s.classifier.AnalyzeIngredientImage(ctx, req.Image)
}

// MergeIngredient folds an analyzed ingredient into existing stock. Matching
// is exact equality on (name, storageType, expiryDate) within the scope:
// registration must never fold visually similar but distinct items together,
// unlike consumption which matches generously. The find-then-write sequence
// runs under a per-key advisory lock so concurrent merges of the same item
// accumulate instead of duplicating.
func (s *inventoryService) MergeIngredient(ctx context.Context, req domain.MergeIngredientRequest, scope domain.Scope) error {
	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.ErrInvalidExpiryDate
	}

	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	key := mergeLockKey(scope, req.Name, req.StorageType, expiryDate)

	return s.stockRepository.WithMergeLock(ctx, key, func(repo StockRepository) error {
		existing, err := repo.FindMatch(ctx, scope, req.Name, req.StorageType, expiryDate)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.CreateStockItem(ctx, &entities.StockItem{
					ID:          uuid.New(),
					OwnerUserID: scope.OwnerUserID,
					GroupID:     scope.GroupID,
					Name:        req.Name,
					Genre:       req.Genre,
					Quantity:    Round2(req.Quantity),
					Unit:        req.Unit,
					ExpiryDate:  expiryDate,
					StorageType: req.StorageType,
				})
			}
			return err
		}

		existing.Quantity = Round2(existing.Quantity + req.Quantity)
		return repo.UpdateStockItem(ctx, existing)
	})
}

// ConsumeForRecipe decrements stock used by a cooked recipe. Each stock item
// is matched against the recipe's free-text ingredient lines by substring
// containment (first matching line wins); the matched line's parsed amount is
// subtracted. A line with no parseable amount consumes the item entirely.
// Items are processed one by one; an item's failure leaves earlier writes in
// place.
func (s *inventoryService) ConsumeForRecipe(ctx context.Context, recipeIngredientLines []string, scope domain.Scope) (domain.ConsumeForRecipeResponse, error) {
	items, err := s.stockRepository.GetStockItems(ctx, scope, "")
	if err != nil {
		return domain.ConsumeForRecipeResponse{}, err
	}

	var response domain.ConsumeForRecipeResponse

	for _, item := range items {
		line, matched := matchLine(recipeIngredientLines, item.Name)
		if !matched {
			continue
		}

		amount := ParseAmount(line)
		if amount > 0 {
			remaining := Round2(item.Quantity - amount)
			if remaining > 0 {
				item.Quantity = remaining
				if err := s.stockRepository.UpdateStockItem(ctx, item); err != nil {
					return response, err
				}
				response.UpdatedItems++
				continue
			}
		}

		// Amount unspecified or nothing left: remove the row. Quantities are
		// never persisted at zero or below.
		if err := s.stockRepository.DeleteStockItem(ctx, item.ID.String()); err != nil {
			return response, err
		}
		response.RemovedItems++
	}

	return response, nil
}

func (s *inventoryService) GetStockItems(ctx context.Context, scope domain.Scope, storageType string) ([]domain.StockItemResponse, error) {
	items, err := s.stockRepository.GetStockItems(ctx, scope, storageType)
	if err != nil {
		return nil, err
	}

	var response []domain.StockItemResponse
	for _, item := range items {
		response = append(response, domain.StockItemResponse{
			ID:           item.ID.String(),
			Name:         item.Name,
			Genre:        item.Genre,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			ExpiryDate:   item.ExpiryDate,
			ExpiryStatus: expiryStatus(item.ExpiryDate, time.Now()),
			StorageType:  item.StorageType,
			ImageURL:     item.ImageURL,
			Shared:       item.GroupID != nil,
			CreatedAt:    item.CreatedAt,
		})
	}

	return response, nil
}

func (s *inventoryService) DeleteStockItem(ctx context.Context, id string, scope domain.Scope) error {
	item, err := s.stockRepository.GetStockItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStockItemNotFound
		}
		return err
	}

	if !scopeAllows(item, scope) {
		return domain.ErrUnauthorizedAccess
	}

	if item.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.stockRepository.DeleteStockItem(ctx, id)
}

func (s *inventoryService) UploadStockImage(ctx context.Context, req domain.UploadStockImageRequest, scope domain.Scope) error {
	item, err := s.stockRepository.GetStockItemByID(ctx, req.StockItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStockItemNotFound
		}
		return err
	}

	if !scopeAllows(item, scope) {
		return domain.ErrUnauthorizedAccess
	}

	fileName := fmt.Sprintf("stock-item-%s", item.ID.String())
	var objectKey string
	var uploadErr error

	if item.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(item.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "stock-items", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "stock-items", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return s.stockRepository.UpdateStockItem(ctx, item)
}

func matchLine(lines []string, name string) (string, bool) {
	for _, line := range lines {
		if strings.Contains(line, name) {
			return line, true
		}
	}
	return "", false
}

func scopeAllows(item *entities.StockItem, scope domain.Scope) bool {
	if item.GroupID != nil {
		return scope.GroupID != nil && *item.GroupID == *scope.GroupID
	}
	return item.OwnerUserID == scope.OwnerUserID
}

func mergeLockKey(scope domain.Scope, name, storageType string, expiryDate time.Time) string {
	partition := scope.OwnerUserID.String()
	if scope.Shared() {
		partition = scope.GroupID.String()
	}
	return fmt.Sprintf("%s:%s:%s:%s", partition, name, storageType, expiryDate.Format("2006-01-02"))
}

func expiryStatus(expiryDate, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expiry := time.Date(expiryDate.Year(), expiryDate.Month(), expiryDate.Day(), 0, 0, 0, 0, now.Location())

	days := int(expiry.Sub(today).Hours() / 24)
	switch {
	case days < 0:
		return domain.ExpiryStatusExpired
	case days <= 3:
		return domain.ExpiryStatusUrgent
	default:
		return domain.ExpiryStatusSafe
	}
}
