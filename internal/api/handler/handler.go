package handler

import (
	"chatmate/backend/internal/chathub"
	"chatmate/backend/internal/config"
	"chatmate/backend/internal/friends"
	"chatmate/backend/internal/storage"
)

// Handler wires the HTTP routes to the hub and the domain services.
type Handler struct {
	Hub      *chathub.ManagerService
	Delivery *chathub.DeliveryService
	Friends  *friends.Service
	Storage  storage.Storage
	Cfg      *config.Config
}

func NewHandler(hub *chathub.ManagerService, delivery *chathub.DeliveryService, friendsSvc *friends.Service, s storage.Storage, cfg *config.Config) *Handler {
	return &Handler{
		Hub:      hub,
		Delivery: delivery,
		Friends:  friendsSvc,
		Storage:  s,
		Cfg:      cfg,
	}
}
