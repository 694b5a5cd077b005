package cart

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/internal/auth"
	"MiniCart/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20
	msgBadBody   = "JSON inválido"
)

type Server struct {
	Service *Service
	Log     *zap.Logger
}

type itemResp struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Qty       int     `json:"qty"`
}

type viewResp struct {
	Items []itemResp `json:"items"`
	Total float64    `json:"total"`
}

type stockErrorResp struct {
	Message    string `json:"message"`
	Disponible int    `json:"disponible"`
}

// Routes expects auth.Authenticate to have run.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.view)
	r.Post("/add", s.add)
	r.Put("/update/{productId}", s.update)
	r.Delete("/remove/{productId}", s.remove)
	r.Delete("/clear", s.clear)

	return r
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, toResp(s.Service.View(p)))
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	fields, err := decodeFields(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, msgBadBody)
		return
	}
	productID, err := BodyProductID(fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.Service.Add(p, productID, QuantityFrom(fields))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, toResp(v))
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	productID, err := PathProductID(chi.URLParam(r, "productId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	fields, err := decodeFields(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, msgBadBody)
		return
	}

	v, err := s.Service.Update(p, productID, QuantityFrom(fields))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, toResp(v))
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	productID, err := PathProductID(chi.URLParam(r, "productId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.Service.Remove(p, productID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, toResp(v))
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, toResp(s.Service.Clear(p)))
}

func principal(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok || p.Key == "" {
		kit.WriteError(w, r, http.StatusUnauthorized, "Token no encontrado")
		return "", false
	}
	return p.Key, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = internalError(err)
	}

	switch e.Kind {
	case KindValidation:
		kit.WriteError(w, r, http.StatusBadRequest, e.Message)
	case KindNotFound:
		kit.WriteError(w, r, http.StatusNotFound, e.Message)
	case KindInsufficientStock:
		kit.WriteErrorBody(w, r, http.StatusConflict, stockErrorResp{
			Message:    e.Message,
			Disponible: e.Available,
		})
	default:
		if s.Log != nil {
			s.Log.Error("cart request failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, MsgInternal)
	}
}

// decodeFields reads a JSON object or form body. An empty body yields no fields.
func decodeFields(w http.ResponseWriter, r *http.Request) (Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if kit.IsForm(r) {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		f := make(Fields, len(r.PostForm))
		for k := range r.PostForm {
			f[k] = r.PostForm.Get(k)
		}
		return f, nil
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	f := Fields{}
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return f, nil
}

func toResp(v View) viewResp {
	items := make([]itemResp, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, itemResp{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.InexactFloat64(),
			Image:     it.Image,
			Qty:       it.Qty,
		})
	}
	return viewResp{Items: items, Total: v.Total.InexactFloat64()}
}
