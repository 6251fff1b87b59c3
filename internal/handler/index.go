package handler

import "net/http"

const indexPage = `<!DOCTYPE html>
<html lang="ja">
<head><meta charset="utf-8"><title>posledger</title></head>
<body>
<h1>posledger</h1>
<p>POS record API. Resources are served under <code>/api/</code>:
users, products, orders, customers, payments, inventory, sales, deliverymen, deliveries.</p>
</body>
</html>
`

// Index は静的なランディングページを返す。
// GET /
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexPage))
}
