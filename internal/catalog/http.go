package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

type Server struct {
	Catalog *Catalog
	Log     *zap.Logger
}

type productResp struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Stock int     `json:"stock"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.list)
	return r
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	products := s.Catalog.List()

	out := make([]productResp, 0, len(products))
	for _, p := range products {
		out = append(out, productResp{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price.InexactFloat64(),
			Image: p.Image,
			Stock: p.Stock,
		})
	}
	if s.Log != nil {
		s.Log.Debug("catalog listed", zap.Int("products", len(out)))
	}
	kit.WriteJSON(w, http.StatusOK, out)
}
