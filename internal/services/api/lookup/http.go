package lookup

import (
	"net/http"

	phttp "portreg/internal/platform/net/http"
)

// Mount registers the lookup routes on r
func Mount(r phttp.Router, svc *Service) {
	phttp.GetJSON(r, "/services/{service}/{protocol}", func(req *http.Request) (any, error) {
		return svc.Get(phttp.Param(req, "service"), phttp.Param(req, "protocol"))
	})

	phttp.PostJSON(r, "/services/lookup", func(_ *http.Request, in BatchRequest) (any, error) {
		return svc.Batch(in)
	})
}
