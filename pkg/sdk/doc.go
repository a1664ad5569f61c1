// Package lexrelay provides a Go client for the lexrelay HTTP relay.
//
// The relay forwards jurisprudence searches to the public Datajud API and
// fronts the generation, billing, transcript and legal-code services.
//
//	client, _ := lexrelay.New("http://localhost:3500")
//	raw, _ := client.Search(ctx, lexrelay.SearchRequest{
//	    Collection: "trt1",
//	    Term:       "0000001-23.2020.5.01.0001",
//	})
//
// Non-2xx answers are returned as *APIError:
//
//	var apiErr *lexrelay.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusPaymentRequired {
//	    // generation quota exhausted
//	}
package lexrelay
