package services

import (
	"gorm.io/gorm"

	"github.com/AkaakuHub/moshi-bingo/config"
	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

// Package-level service singletons, wired once at startup.
var (
	GameStore  *Store
	Notifier   *Hub
	DrawEngine *Drawer
	Marks      *MarkCache
	Settings   *config.Config
)

// Init wires the store, hub, drawer and mark cache.
func Init(db *gorm.DB, cfg *config.Config) {
	Settings = cfg
	GameStore = NewStore(db)
	Notifier = NewHub(GameStore)
	DrawEngine = NewDrawer(GameStore, Notifier)
	Marks = NewMarkCache(cfg.MarkCachePath)
	logger.Info("services initialized")
}
