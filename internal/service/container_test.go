package service

import (
	"os"
	"path/filepath"
	"testing"

	"seo-ai/internal/config"
	"seo-ai/pkg/scorer"
)

func TestLoadModel_MissingWithoutTraining(t *testing.T) {
	cfg := config.ModelConfig{Path: filepath.Join(t.TempDir(), "model.json")}

	p, err := LoadModel(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p != nil {
		t.Errorf("Expected no model when training is disabled")
	}
}

func TestLoadModel_TrainsAndReloads(t *testing.T) {
	cfg := config.ModelConfig{
		Path:           filepath.Join(t.TempDir(), "models", "model.json"),
		TrainIfMissing: true,
		Samples:        60,
		Trees:          5,
		Seed:           7,
	}

	trained, err := LoadModel(cfg)
	if err != nil {
		t.Fatalf("Training failed: %v", err)
	}
	if trained == nil {
		t.Fatal("Expected a trained model")
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		t.Fatalf("Model file was not saved: %v", err)
	}

	cfg.TrainIfMissing = false
	loaded, err := LoadModel(cfg)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	page := scorer.PageContent{Title: "Guide", Article: "Some words about sourdough baking.", Meta: "Bake"}
	want := trained.PredictPage(scorer.PageSignals{}, page).Score
	got := loaded.PredictPage(scorer.PageSignals{}, page).Score
	if got != want {
		t.Errorf("Reloaded model predicts %v, trained model %v", got, want)
	}
}

func TestLoadModel_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := LoadModel(config.ModelConfig{Path: path, TrainIfMissing: true}); err == nil {
		t.Error("Expected an error for a corrupt model file")
	}
}

func TestContainer_ReloadSwapsModel(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "llm:\n  provider: mock\nmodel:\n  path: " + modelPath + "\n  train_if_missing: false\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	mgr := config.NewManager()
	if _, err := mgr.Load(cfgPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	c := &Container{Models: scorer.NewModelStore(nil)}

	if err := c.Reload(mgr); err != nil {
		t.Fatalf("Reload without a model file failed: %v", err)
	}
	if c.Models.Get() != nil {
		t.Fatal("Expected no model before one is saved")
	}

	p, err := scorer.Train(scorer.TrainOptions{Samples: 60, Trees: 5, Seed: 3})
	if err != nil {
		t.Fatalf("Training failed: %v", err)
	}
	if err := p.Save(modelPath); err != nil {
		t.Fatalf("Failed to save model: %v", err)
	}

	if err := c.Reload(mgr); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	page := scorer.PageContent{Title: "Guide", Article: "Some words about sourdough baking."}
	got, err := c.Models.PredictPage(scorer.PageSignals{}, page)
	if err != nil {
		t.Fatalf("Expected the saved model to be active, got: %v", err)
	}
	if want := p.PredictPage(scorer.PageSignals{}, page).Score; got.Score != want {
		t.Errorf("Expected score %v from the reloaded model, got %v", want, got.Score)
	}
}

func TestContainer_ReloadRequiresLoadedConfig(t *testing.T) {
	c := &Container{Models: scorer.NewModelStore(nil)}
	if err := c.Reload(config.NewManager()); err == nil {
		t.Fatal("Expected reload before load to fail")
	}
}
