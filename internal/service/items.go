package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xmkt/marketplace/internal/auth"
	"github.com/xmkt/marketplace/internal/imagestore"
	"github.com/xmkt/marketplace/internal/imaging"
	"github.com/xmkt/marketplace/internal/model"
	"github.com/xmkt/marketplace/internal/store"
)

// MaxImageBytes is the per-file upload limit.
const MaxImageBytes = 5 << 20

// ItemService orchestrates validation, image upload, delete-key hashing and
// persistence for the item lifecycle.
type ItemService struct {
	DB        *sql.DB
	Images    *imagestore.Client
	MasterKey string
}

// ItemInput holds the caller-supplied fields for creating an item.
type ItemInput struct {
	Title               string
	Price               string
	Contact             string
	Category            string
	CategoryDescription string
	Timestamp           int64 // 0 defaults to now; otherwise trusted as-is
	ApronSize           string
	ApronColor          string
	DeleteKey           string
}

// ImageFile is one uploaded image payload.
type ImageFile struct {
	Name string
	Data []byte
}

// EditInput holds the editable fields for an existing item. Empty title,
// price or category keep the stored value; the category description is
// applied as given so it can be cleared.
type EditInput struct {
	Title               string
	Price               string
	Category            string
	CategoryDescription string
}

// Create validates the input, uploads the images in submission order, hashes
// the delete key and persists the item. Already-uploaded images are not
// rolled back when a later step fails.
func (s *ItemService) Create(ctx context.Context, input ItemInput, files []ImageFile) (*model.Item, error) {
	if len(files) == 0 {
		return nil, ErrNoImages
	}
	if len(files) > model.MaxImages {
		return nil, validationf("at most %d images allowed", model.MaxImages)
	}
	if strings.TrimSpace(input.DeleteKey) == "" {
		return nil, ErrMissingDeleteKey
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Price = strings.TrimSpace(input.Price)
	input.Contact = strings.TrimSpace(input.Contact)
	input.Category = strings.TrimSpace(input.Category)
	for field, value := range map[string]string{
		"title":    input.Title,
		"price":    input.Price,
		"contact":  input.Contact,
		"category": input.Category,
	} {
		if value == "" {
			return nil, validationf("%s required", field)
		}
	}

	if input.Category == model.CategoryAprons {
		if strings.TrimSpace(input.ApronSize) == "" {
			return nil, validationf("apronSize required for %s", model.CategoryAprons)
		}
		if strings.TrimSpace(input.ApronColor) == "" {
			return nil, validationf("apronColor required for %s", model.CategoryAprons)
		}
	}

	// Validate everything before the first upload.
	processed := make([]*imaging.ProcessResult, 0, len(files))
	for _, f := range files {
		if len(f.Data) > MaxImageBytes {
			return nil, validationf("image %s exceeds %d bytes", f.Name, MaxImageBytes)
		}
		result, err := imaging.Process(bytes.NewReader(f.Data))
		if err != nil {
			return nil, validationf("image %s: %v", f.Name, err)
		}
		processed = append(processed, result)
	}

	// Order matters: index 0 is the display image.
	urls := make([]string, 0, len(files))
	for i, p := range processed {
		url, err := s.Images.Upload(ctx, files[i].Name, p.Data)
		if err != nil {
			return nil, fmt.Errorf("uploading image %d of %d: %w", i+1, len(files), err)
		}
		urls = append(urls, url)
	}

	hash, err := auth.HashDeleteKey(input.DeleteKey)
	if err != nil {
		return nil, err
	}

	item := &model.Item{
		Title:               input.Title,
		Price:               model.NormalizePrice(input.Price),
		Contact:             input.Contact,
		Category:            input.Category,
		CategoryDescription: strings.TrimSpace(input.CategoryDescription),
		Images:              urls,
		Timestamp:           input.Timestamp,
		DeleteKeyHash:       hash,
	}
	if item.Timestamp == 0 {
		item.Timestamp = time.Now().UnixMilli()
	}
	if input.Category == model.CategoryAprons {
		item.ApronSize = strings.TrimSpace(input.ApronSize)
		item.ApronColor = strings.TrimSpace(input.ApronColor)
	}

	return store.CreateItem(ctx, s.DB, item)
}

// Get returns an item by ID.
func (s *ItemService) Get(ctx context.Context, id int64) (*model.Item, error) {
	item, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// List returns items per the given filter/sort/pagination options.
func (s *ItemService) List(ctx context.Context, opts store.ListOptions) ([]model.Item, error) {
	return store.ListItems(ctx, s.DB, opts)
}

// Delete removes an item after the credential guard approves. Each image is
// deleted from the host best-effort: a failed image deletion is logged and
// never blocks removal of the record, which is the source of truth.
func (s *ItemService) Delete(ctx context.Context, id int64, deleteKey string) (auth.Decision, error) {
	item, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return auth.DecisionDenied, err
	}
	if item == nil {
		return auth.DecisionDenied, ErrNotFound
	}

	decision, err := auth.Authorize(s.MasterKey, deleteKey, item)
	if err != nil {
		return decision, err
	}
	if !decision.Authorized() {
		return decision, ErrUnauthorized
	}

	for _, url := range item.Images {
		publicID, err := imagestore.PublicIDFromURL(url)
		if err != nil {
			log.Printf("item %d: cannot derive image id from %s: %v", id, url, err)
			continue
		}
		if err := s.Images.Delete(ctx, publicID); err != nil {
			log.Printf("item %d: image cleanup failed for %s: %v", id, publicID, err)
		}
	}

	if err := store.DeleteItem(ctx, s.DB, id); err != nil {
		return decision, err
	}
	log.Printf("item %d deleted (%s)", id, decision)
	return decision, nil
}

// Edit updates an item's editable fields after the credential guard
// approves. With verifyOnly the secret is checked and nothing is mutated.
func (s *ItemService) Edit(ctx context.Context, id int64, deleteKey string, verifyOnly bool, input EditInput) (*model.Item, auth.Decision, error) {
	item, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return nil, auth.DecisionDenied, err
	}
	if item == nil {
		return nil, auth.DecisionDenied, ErrNotFound
	}

	decision, err := auth.Authorize(s.MasterKey, deleteKey, item)
	if err != nil {
		return nil, decision, err
	}
	if !decision.Authorized() {
		return nil, decision, ErrUnauthorized
	}

	if verifyOnly {
		return item, decision, nil
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = item.Title
	}
	price := strings.TrimSpace(input.Price)
	if price == "" {
		price = item.Price
	} else {
		price = model.NormalizePrice(price)
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = item.Category
	}

	if err := store.UpdateItem(ctx, s.DB, id, title, price, category,
		strings.TrimSpace(input.CategoryDescription)); err != nil {
		return nil, decision, err
	}

	updated, err := store.GetItem(ctx, s.DB, id)
	if err != nil {
		return nil, decision, err
	}
	log.Printf("item %d updated (%s)", id, decision)
	return updated, decision, nil
}
