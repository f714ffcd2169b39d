package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/neonglow/neonglow-backend-go/models"
	"github.com/neonglow/neonglow-backend-go/utils"
)

// ValidationError marks a malformed payload; handlers translate it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// optionsPayload mirrors the stored document but keeps numeric fields and
// dimmer ids untyped so client input ("299", 299, garbage) can be coerced
// with a field-level error instead of a decode failure.
type optionsPayload struct {
	ProductType   string               `json:"productType"`
	Colors        []models.ColorOption `json:"colors"`
	Sizes         []sizePayload        `json:"sizes"`
	Fonts         []models.FontOption  `json:"fonts"`
	AddOns        []addOnPayload       `json:"addOns"`
	Backgrounds   []backgroundPayload  `json:"backgrounds"`
	DimmerOptions []dimmerPayload      `json:"dimmerOptions"`
	ShapeOptions  []iconPayload        `json:"shapeOptions"`
	UsageOptions  []iconPayload        `json:"usageOptions"`
}

type sizePayload struct {
	Value  string      `json:"value"`
	Name   string      `json:"name"`
	Width  interface{} `json:"width"`
	Height interface{} `json:"height"`
	Price  interface{} `json:"price"`
}

type addOnPayload struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Icon  string      `json:"icon"`
	Price interface{} `json:"price"`
	Image string      `json:"image"`
	SVG   string      `json:"svg"`
}

type backgroundPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type dimmerPayload struct {
	ID    interface{} `json:"id"`
	Name  string      `json:"name"`
	Icon  string      `json:"icon"`
	Price interface{} `json:"price"`
}

type iconPayload struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Icon  string      `json:"icon"`
	Price interface{} `json:"price"`
	Image string      `json:"image"`
}

// uploadedFile is a staged file already pushed to the remote store.
type uploadedFile struct {
	URL      string
	PublicID string
	MimeType string
}

// uploadedFileSet maps a form field group ("addOnFiles") to files keyed by
// the token inside the brackets: an entry id, or an array index as fallback.
type uploadedFileSet map[string]map[string]uploadedFile

func (s uploadedFileSet) add(group, token string, f uploadedFile) {
	if s[group] == nil {
		s[group] = make(map[string]uploadedFile)
	}
	s[group][token] = f
}

// lookup prefers the stable id over the positional index: index matching
// silently mismatches when the client reorders or removes entries.
func (s uploadedFileSet) lookup(group, id string, idx int) (uploadedFile, bool) {
	files, ok := s[group]
	if !ok {
		return uploadedFile{}, false
	}
	if id != "" {
		if f, ok := files[id]; ok {
			return f, true
		}
	}
	f, ok := files[strconv.Itoa(idx)]
	return f, ok
}

func coerceNumber(v interface{}, field string) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, validationErrorf("%s must be a number", field)
		}
		return f, nil
	default:
		return 0, validationErrorf("%s must be a number", field)
	}
}

// ensureOptionID returns the existing id or generates a stable one. Ids are
// the reconciliation key and must never be left empty.
func ensureOptionID(group, id string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	token := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return group + "-" + token
}

// projectDimmerID collapses a dimmer id into the domain valid for the
// product type: nil or "dimmer" for floro, booleans for everything else.
func projectDimmerID(productType models.ProductType, id interface{}) interface{} {
	if productType == models.ProductTypeFloro {
		if s, ok := id.(string); ok && s == "dimmer" {
			return "dimmer"
		}
		return nil
	}
	if b, ok := id.(bool); ok {
		return b
	}
	return false
}

func defaultDimmerOption(productType models.ProductType) models.DimmerOption {
	var id interface{} = false
	if productType == models.ProductTypeFloro {
		id = nil
	}
	return models.DimmerOption{ID: id, Name: "No Dimmer", Icon: "❌", Price: 0}
}

// normalizeOptions turns an incoming payload into a storable document:
// numeric coercion, id generation, dimmer domain projection and default
// synthesis, and file-to-entry assignment.
func normalizeOptions(productType models.ProductType, payload *optionsPayload, files uploadedFileSet) (*models.CustomizationOptions, error) {
	doc := &models.CustomizationOptions{
		ProductType: productType,
		Colors:      payload.Colors,
	}

	for i, s := range payload.Sizes {
		width, err := coerceNumber(s.Width, fmt.Sprintf("sizes[%d].width", i))
		if err != nil {
			return nil, err
		}
		height, err := coerceNumber(s.Height, fmt.Sprintf("sizes[%d].height", i))
		if err != nil {
			return nil, err
		}
		price, err := coerceNumber(s.Price, fmt.Sprintf("sizes[%d].price", i))
		if err != nil {
			return nil, err
		}
		doc.Sizes = append(doc.Sizes, models.SizeOption{
			Value:  s.Value,
			Name:   s.Name,
			Width:  width,
			Height: height,
			Price:  price,
		})
	}

	doc.Fonts = payload.Fonts

	for i, a := range payload.AddOns {
		price, err := coerceNumber(a.Price, fmt.Sprintf("addOns[%d].price", i))
		if err != nil {
			return nil, err
		}
		addOn := models.AddOnOption{
			ID:    ensureOptionID("addon", a.ID),
			Name:  a.Name,
			Icon:  a.Icon,
			Price: price,
			Image: a.Image,
			SVG:   a.SVG,
		}
		if f, ok := files.lookup("addOnFiles", a.ID, i); ok {
			addOn.Image = f.URL
			if productType == models.ProductTypeFloro && strings.Contains(f.MimeType, "svg") {
				addOn.SVG = f.URL
			}
		}
		doc.AddOns = append(doc.AddOns, addOn)
	}

	for i, b := range payload.Backgrounds {
		background := models.BackgroundOption{
			ID:    ensureOptionID("background", b.ID),
			Name:  b.Name,
			Image: b.Image,
		}
		if f, ok := files.lookup("backgroundFiles", b.ID, i); ok {
			background.Image = f.URL
		}
		doc.Backgrounds = append(doc.Backgrounds, background)
	}

	for i, d := range payload.DimmerOptions {
		price, err := coerceNumber(d.Price, fmt.Sprintf("dimmerOptions[%d].price", i))
		if err != nil {
			return nil, err
		}
		doc.DimmerOptions = append(doc.DimmerOptions, models.DimmerOption{
			ID:    projectDimmerID(productType, d.ID),
			Name:  d.Name,
			Icon:  d.Icon,
			Price: price,
		})
	}
	// At least one dimmer entry must exist after every write.
	if len(doc.DimmerOptions) == 0 {
		doc.DimmerOptions = []models.DimmerOption{defaultDimmerOption(productType)}
	}

	shapeOptions, err := normalizeIconOptions(payload.ShapeOptions, "shapeOptions", "shape", files, "shapeOptionFiles")
	if err != nil {
		return nil, err
	}
	doc.ShapeOptions = shapeOptions

	usageOptions, err := normalizeIconOptions(payload.UsageOptions, "usageOptions", "usage", files, "")
	if err != nil {
		return nil, err
	}
	doc.UsageOptions = usageOptions

	return doc, nil
}

func normalizeIconOptions(payload []iconPayload, field, idPrefix string, files uploadedFileSet, fileGroup string) ([]models.IconOption, error) {
	var out []models.IconOption
	for i, o := range payload {
		price, err := coerceNumber(o.Price, fmt.Sprintf("%s[%d].price", field, i))
		if err != nil {
			return nil, err
		}
		opt := models.IconOption{
			ID:    ensureOptionID(idPrefix, o.ID),
			Name:  o.Name,
			Icon:  o.Icon,
			Price: price,
			Image: o.Image,
		}
		if fileGroup != "" {
			if f, ok := files.lookup(fileGroup, o.ID, i); ok {
				opt.Image = f.URL
			}
		}
		out = append(out, opt)
	}
	return out, nil
}

// releaseOrphanedAssets diffs the stored document against the incoming one
// and releases remote assets no longer referenced. Matching is by id with a
// name fallback for entries that predate id-based storage. Release failures
// are logged and swallowed: a dangling remote asset beats a failed write.
func releaseOrphanedAssets(ctx context.Context, stored, incoming *models.CustomizationOptions, destroy func(context.Context, string) error) {
	if stored == nil {
		return
	}

	type ref struct {
		id, name, image string
	}
	release := func(group string, storedRefs, incomingRefs []ref) {
		kept := make(map[string]bool, len(incomingRefs)*2)
		for _, r := range incomingRefs {
			if r.id != "" {
				kept["id:"+r.id] = true
			}
			if r.name != "" {
				kept["name:"+r.name] = true
			}
		}
		for _, r := range storedRefs {
			if r.image == "" {
				continue
			}
			if r.id != "" && kept["id:"+r.id] {
				continue
			}
			if r.id == "" && kept["name:"+r.name] {
				continue
			}
			publicID := utils.PublicIDFromURL(r.image)
			if publicID == "" {
				continue
			}
			if err := destroy(ctx, publicID); err != nil {
				log.Printf("Failed to release orphaned %s asset %s: %v", group, publicID, err)
			}
		}
	}

	addOnRefs := func(opts []models.AddOnOption) []ref {
		out := make([]ref, 0, len(opts))
		for _, o := range opts {
			out = append(out, ref{id: o.ID, name: o.Name, image: o.Image})
		}
		return out
	}
	backgroundRefs := func(opts []models.BackgroundOption) []ref {
		out := make([]ref, 0, len(opts))
		for _, o := range opts {
			out = append(out, ref{id: o.ID, name: o.Name, image: o.Image})
		}
		return out
	}
	iconRefs := func(opts []models.IconOption) []ref {
		out := make([]ref, 0, len(opts))
		for _, o := range opts {
			out = append(out, ref{id: o.ID, name: o.Name, image: o.Image})
		}
		return out
	}

	release("addOn", addOnRefs(stored.AddOns), addOnRefs(incoming.AddOns))
	release("background", backgroundRefs(stored.Backgrounds), backgroundRefs(incoming.Backgrounds))
	release("shapeOption", iconRefs(stored.ShapeOptions), iconRefs(incoming.ShapeOptions))
}
