package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neonglow/neonglow-backend-go/models"
)

func TestNormalizeSynthesizesDefaultDimmer(t *testing.T) {
	doc, err := normalizeOptions(models.ProductTypeNeon, &optionsPayload{}, nil)
	if err != nil {
		t.Fatalf("normalizeOptions: %v", err)
	}
	if len(doc.DimmerOptions) != 1 {
		t.Fatalf("expected exactly one dimmer option, got %d", len(doc.DimmerOptions))
	}
	d := doc.DimmerOptions[0]
	if d.ID != false {
		t.Errorf("neon default dimmer id = %v, want false", d.ID)
	}
	if d.Name != "No Dimmer" || d.Icon != "❌" || d.Price != 0 {
		t.Errorf("unexpected default dimmer entry: %+v", d)
	}

	doc, err = normalizeOptions(models.ProductTypeFloro, &optionsPayload{}, nil)
	if err != nil {
		t.Fatalf("normalizeOptions: %v", err)
	}
	if len(doc.DimmerOptions) != 1 || doc.DimmerOptions[0].ID != nil {
		t.Errorf("floro default dimmer = %+v, want single entry with nil id", doc.DimmerOptions)
	}
}

func TestProjectDimmerID(t *testing.T) {
	cases := []struct {
		productType models.ProductType
		in          interface{}
		want        interface{}
	}{
		{models.ProductTypeFloro, "dimmer", "dimmer"},
		{models.ProductTypeFloro, nil, nil},
		{models.ProductTypeFloro, "anything-else", nil},
		{models.ProductTypeFloro, float64(5), nil},
		{models.ProductTypeFloro, true, nil},
		{models.ProductTypeNeon, true, true},
		{models.ProductTypeNeon, false, false},
		{models.ProductTypeNeon, "dimmer", false},
		{models.ProductTypeNeon, nil, false},
		{models.ProductTypeNeon, float64(1), false},
	}
	for _, tc := range cases {
		got := projectDimmerID(tc.productType, tc.in)
		if got != tc.want {
			t.Errorf("projectDimmerID(%s, %v) = %v, want %v", tc.productType, tc.in, got, tc.want)
		}
	}
}

func TestCoerceNumber(t *testing.T) {
	if v, err := coerceNumber("299.5", "f"); err != nil || v != 299.5 {
		t.Errorf(`coerceNumber("299.5") = %v, %v`, v, err)
	}
	if v, err := coerceNumber(float64(42), "f"); err != nil || v != 42 {
		t.Errorf("coerceNumber(42) = %v, %v", v, err)
	}
	if v, err := coerceNumber(nil, "f"); err != nil || v != 0 {
		t.Errorf("coerceNumber(nil) = %v, %v", v, err)
	}
	if v, err := coerceNumber("  ", "f"); err != nil || v != 0 {
		t.Errorf(`coerceNumber("  ") = %v, %v`, v, err)
	}
	if _, err := coerceNumber("abc", "sizes[0].price"); err == nil || !strings.Contains(err.Error(), "sizes[0].price") {
		t.Errorf("coerceNumber bad input error = %v, want field name in message", err)
	}
	if _, err := coerceNumber(true, "f"); err == nil {
		t.Error("coerceNumber(true) should fail")
	}
}

func TestNormalizeRejectsBadNumeric(t *testing.T) {
	payload := &optionsPayload{
		Sizes: []sizePayload{{Value: "regular", Name: "Regular", Width: "3", Height: "10", Price: "not-a-price"}},
	}
	_, err := normalizeOptions(models.ProductTypeNeon, payload, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "sizes[0].price") {
		t.Errorf("error %q does not name the offending field", err.Error())
	}
}

func TestNormalizeCoercesStringNumerics(t *testing.T) {
	payload := &optionsPayload{
		Sizes:  []sizePayload{{Value: "large", Name: "Large", Width: "5", Height: float64(10), Price: "499"}},
		AddOns: []addOnPayload{{ID: "stars", Name: "Stars", Price: "500"}},
	}
	doc, err := normalizeOptions(models.ProductTypeNeon, payload, nil)
	if err != nil {
		t.Fatalf("normalizeOptions: %v", err)
	}
	s := doc.Sizes[0]
	if s.Width != 5 || s.Height != 10 || s.Price != 499 {
		t.Errorf("size not coerced: %+v", s)
	}
	if doc.AddOns[0].Price != 500 {
		t.Errorf("addOn price = %v, want 500", doc.AddOns[0].Price)
	}
}

func TestNormalizeGeneratesStableIDs(t *testing.T) {
	payload := &optionsPayload{
		AddOns:       []addOnPayload{{Name: "Flowers"}, {ID: "stars", Name: "Stars"}},
		Backgrounds:  []backgroundPayload{{Name: "Brick Wall"}},
		ShapeOptions: []iconPayload{{Name: "Cut to Shape"}},
		UsageOptions: []iconPayload{{Name: "Indoor"}},
	}
	doc, err := normalizeOptions(models.ProductTypeNeon, payload, nil)
	if err != nil {
		t.Fatalf("normalizeOptions: %v", err)
	}
	if !strings.HasPrefix(doc.AddOns[0].ID, "addon-") || len(doc.AddOns[0].ID) <= len("addon-") {
		t.Errorf("generated addOn id = %q", doc.AddOns[0].ID)
	}
	if doc.AddOns[1].ID != "stars" {
		t.Errorf("existing id rewritten to %q", doc.AddOns[1].ID)
	}
	if !strings.HasPrefix(doc.Backgrounds[0].ID, "background-") {
		t.Errorf("generated background id = %q", doc.Backgrounds[0].ID)
	}
	if !strings.HasPrefix(doc.ShapeOptions[0].ID, "shape-") {
		t.Errorf("generated shape id = %q", doc.ShapeOptions[0].ID)
	}
	if !strings.HasPrefix(doc.UsageOptions[0].ID, "usage-") {
		t.Errorf("generated usage id = %q", doc.UsageOptions[0].ID)
	}
}

func TestFileLookupPrefersID(t *testing.T) {
	files := make(uploadedFileSet)
	files.add("addOnFiles", "flowers", uploadedFile{URL: "https://cdn/by-id.png"})
	files.add("addOnFiles", "0", uploadedFile{URL: "https://cdn/by-index.png"})

	// Entry carries an id with a matching file: the id wins even though the
	// positional key also matches.
	f, ok := files.lookup("addOnFiles", "flowers", 0)
	if !ok || f.URL != "https://cdn/by-id.png" {
		t.Errorf("lookup by id = %+v, %v", f, ok)
	}

	// No id correlation: fall back to the index.
	f, ok = files.lookup("addOnFiles", "hearts", 0)
	if !ok || f.URL != "https://cdn/by-index.png" {
		t.Errorf("lookup by index = %+v, %v", f, ok)
	}

	if _, ok := files.lookup("addOnFiles", "hearts", 7); ok {
		t.Error("lookup with no match should miss")
	}
	if _, ok := files.lookup("backgroundFiles", "flowers", 0); ok {
		t.Error("lookup in empty group should miss")
	}
}

func TestNormalizeAssignsUploadedFiles(t *testing.T) {
	files := make(uploadedFileSet)
	files.add("addOnFiles", "flowers", uploadedFile{URL: "https://cdn/flowers.svg", MimeType: "image/svg+xml"})
	files.add("backgroundFiles", "1", uploadedFile{URL: "https://cdn/wall.png", MimeType: "image/png"})

	payload := &optionsPayload{
		AddOns: []addOnPayload{{ID: "flowers", Name: "Flowers", Image: "https://cdn/old.png"}},
		Backgrounds: []backgroundPayload{
			{ID: "brick", Name: "Brick Wall", Image: "https://cdn/brick.png"},
			{ID: "cafe", Name: "Cafe Wall"},
		},
	}

	doc, err := normalizeOptions(models.ProductTypeFloro, payload, files)
	if err != nil {
		t.Fatalf("normalizeOptions: %v", err)
	}
	if doc.AddOns[0].Image != "https://cdn/flowers.svg" {
		t.Errorf("addOn image = %q", doc.AddOns[0].Image)
	}
	// floro + vector mime populates the svg locator too
	if doc.AddOns[0].SVG != "https://cdn/flowers.svg" {
		t.Errorf("addOn svg = %q", doc.AddOns[0].SVG)
	}
	if doc.Backgrounds[0].Image != "https://cdn/brick.png" {
		t.Errorf("background without file changed: %q", doc.Backgrounds[0].Image)
	}
	if doc.Backgrounds[1].Image != "https://cdn/wall.png" {
		t.Errorf("indexed background file not assigned: %q", doc.Backgrounds[1].Image)
	}

	// Non-floro product types never populate the svg locator.
	doc, err = normalizeOptions(models.ProductTypeNeon, payload, files)
	if err != nil {
		t.Fatalf("normalizeOptions: %v", err)
	}
	if doc.AddOns[0].SVG != "" {
		t.Errorf("neon addOn svg = %q, want empty", doc.AddOns[0].SVG)
	}
}

func TestReleaseOrphanedAssets(t *testing.T) {
	stored := &models.CustomizationOptions{
		AddOns: []models.AddOnOption{
			{ID: "flowers", Name: "Flowers", Image: "https://res.cloudinary.com/demo/image/upload/v1/customization-options/flowers.png"},
			{ID: "stars", Name: "Stars", Image: "https://res.cloudinary.com/demo/image/upload/v1/customization-options/stars.png"},
			{ID: "hearts", Name: "Hearts"},
		},
		Backgrounds: []models.BackgroundOption{
			// Predates id-based storage: matched by name.
			{Name: "Brick Wall", Image: "https://res.cloudinary.com/demo/image/upload/v1/customization-options/brick.png"},
		},
	}
	incoming := &models.CustomizationOptions{
		AddOns: []models.AddOnOption{
			{ID: "stars", Name: "Stars", Image: stored.AddOns[1].Image},
		},
		Backgrounds: []models.BackgroundOption{
			{ID: "background-abc123", Name: "Brick Wall", Image: stored.Backgrounds[0].Image},
		},
	}

	released := map[string]int{}
	destroy := func(_ context.Context, publicID string) error {
		released[publicID]++
		return nil
	}

	releaseOrphanedAssets(context.Background(), stored, incoming, destroy)

	if released["customization-options/flowers"] != 1 {
		t.Errorf("flowers asset released %d times, want 1", released["customization-options/flowers"])
	}
	if len(released) != 1 {
		t.Errorf("unexpected releases: %v", released)
	}
}

func TestReleaseOrphanedAssetsSwallowsFailures(t *testing.T) {
	stored := &models.CustomizationOptions{
		AddOns: []models.AddOnOption{
			{ID: "flowers", Image: "https://res.cloudinary.com/demo/image/upload/customization-options/flowers.png"},
		},
	}
	destroy := func(context.Context, string) error {
		return errors.New("remote store down")
	}
	// Must not panic or propagate.
	releaseOrphanedAssets(context.Background(), stored, &models.CustomizationOptions{}, destroy)
	releaseOrphanedAssets(context.Background(), nil, &models.CustomizationOptions{}, destroy)
}

func TestReleaseSkipsForeignURLs(t *testing.T) {
	stored := &models.CustomizationOptions{
		Backgrounds: []models.BackgroundOption{
			{ID: "brick", Name: "Brick Wall", Image: "https://source.unsplash.com/featured/?brick,wall"},
		},
	}
	destroy := func(context.Context, string) error {
		t.Error("foreign URL must not be released")
		return nil
	}
	releaseOrphanedAssets(context.Background(), stored, &models.CustomizationOptions{}, destroy)
}

func TestParseFileKey(t *testing.T) {
	cases := []struct {
		in    string
		group string
		token string
		ok    bool
	}{
		{"addOnFiles[2]", "addOnFiles", "2", true},
		{"addOnFiles[flowers]", "addOnFiles", "flowers", true},
		{"backgroundFiles[0]", "backgroundFiles", "0", true},
		{"addOnFiles", "", "", false},
		{"addOnFiles[]", "", "", false},
		{"[2]", "", "", false},
	}
	for _, tc := range cases {
		group, token, ok := parseFileKey(tc.in)
		if group != tc.group || token != tc.token || ok != tc.ok {
			t.Errorf("parseFileKey(%q) = %q, %q, %v", tc.in, group, token, ok)
		}
	}
}
