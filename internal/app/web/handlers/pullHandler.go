package handlers

import (
	"net/http"

	"gomarketsync/internal/channels"
	"gomarketsync/internal/sync"
	"gomarketsync/pkg/logger"
)

type PullHandler struct {
	dispatcher *sync.Dispatcher
	store      channels.AccountStore
	log        logger.Logger
}

func NewPullHandler(dispatcher *sync.Dispatcher, store channels.AccountStore, log logger.Logger) *PullHandler {
	return &PullHandler{dispatcher: dispatcher, store: store, log: log}
}

type pullRequest struct {
	Channel string            `json:"channel"`
	Account string            `json:"account"`
	Filters map[string]string `json:"filters"`
}

func (h *PullHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req pullRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	channel, err := channels.ParseChannel(req.Channel)
	if err != nil {
		respondJSON(w, http.StatusOK, sync.NewUnsupportedChannel(req.Channel))
		return
	}

	account, err := h.store.GetAccount(r.Context(), channel, req.Account)
	if err != nil {
		respondJSON(w, http.StatusOK, sync.NewFailure("account lookup failed", err.Error()))
		return
	}

	builder, failure := h.dispatcher.For(req.Channel, account)
	if failure != nil {
		respondJSON(w, http.StatusOK, failure)
		return
	}

	result := builder.Pull(req.Filters).Push(r.Context())
	respondJSON(w, http.StatusOK, result)
}
