package service

import (
	"testing"

	"github.com/gattabara/site/internal/db"
)

func TestUploadAssetRecordStoresDimensions(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewUploadAssetService(gdb)

	err := svc.Record(UploadedAsset{
		Path:     "/uploads/1-0.png",
		Category: "game-image",
		MimeType: "image/png",
		Data:     encodeTestPNG(t, 6, 2),
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	var row db.UploadAsset
	if err := gdb.Where("path = ?", "/uploads/1-0.png").First(&row).Error; err != nil {
		t.Fatalf("failed to load asset: %v", err)
	}
	if row.Width != 6 || row.Height != 2 {
		t.Fatalf("expected 6x2, got %dx%d", row.Width, row.Height)
	}
	if row.Category != "game-image" || row.Size == 0 {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestUploadAssetRecordUpsertsByPath(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewUploadAssetService(gdb)

	if err := svc.Record(UploadedAsset{Path: "/uploads/a.svg", Category: "client-logo", MimeType: "image/svg+xml", Data: []byte("<svg/>")}); err != nil {
		t.Fatalf("first Record returned error: %v", err)
	}
	if err := svc.Record(UploadedAsset{Path: "/uploads/a.svg", Category: "value-image", MimeType: "image/svg+xml", Data: []byte("<svg></svg>")}); err != nil {
		t.Fatalf("second Record returned error: %v", err)
	}

	items, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(items))
	}
	if items[0].Category != "value-image" || items[0].Size != int64(len("<svg></svg>")) {
		t.Fatalf("expected refreshed row, got %+v", items[0])
	}
	if items[0].Width != 0 || items[0].Height != 0 {
		t.Fatalf("svg should not carry dimensions, got %dx%d", items[0].Width, items[0].Height)
	}
}

func TestUploadAssetForget(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewUploadAssetService(gdb)

	for _, path := range []string{"/uploads/a.png", "/uploads/b.png"} {
		if err := svc.Record(UploadedAsset{Path: path, MimeType: "image/png"}); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}
	if err := svc.Forget("/uploads/a.png"); err != nil {
		t.Fatalf("Forget returned error: %v", err)
	}
	if err := svc.Forget("/uploads/missing.png"); err != nil {
		t.Fatalf("Forget of unknown path returned error: %v", err)
	}

	var count int64
	gdb.Unscoped().Model(&db.UploadAsset{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 remaining asset, got %d", count)
	}
}

func TestUploadAssetServiceWiresIntoContentStore(t *testing.T) {
	gdb := setupServiceTestDB(t)
	assets := NewUploadAssetService(gdb)
	dir := t.TempDir()
	store := NewContentStore(ContentStoreOptions{
		ContentPath: dir + "/content.json",
		UploadDir:   dir + "/uploads",
		Assets:      assets,
	})

	doc := siteWithGameImage(EncodeDataURI("image/png", encodeTestPNG(t, 3, 3)))
	saved, err := store.Save(doc)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	items, err := assets.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || items[0].Path != saved.Games[0].Image {
		t.Fatalf("expected ledger row for %s, got %+v", saved.Games[0].Image, items)
	}

	if _, err := store.Save(siteWithGameImage("")); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}
	items, _ = assets.List()
	if len(items) != 0 {
		t.Fatalf("expected ledger to drop deleted upload, got %+v", items)
	}
}
