package http

import (
	"net/http"
	"strconv"

	"expenditure/internal/core"
	"expenditure/internal/log"
)

type transactionsView struct {
	layout
	Page       panel[core.PaginatedData[core.Transaction]]
	Form       TransactionForm
	Types      []core.TransactionType
	Categories []string
}

func (v transactionsView) PrevPage() int { return v.Page.Data.PageNo - 1 }
func (v transactionsView) NextPage() int { return v.Page.Data.PageNo + 1 }

func newTransactionsView() transactionsView {
	return transactionsView{
		layout:     layout{Title: "Transactions", Active: pageTransactions},
		Form:       TransactionForm{Type: string(core.Expense)},
		Types:      []core.TransactionType{core.Expense, core.Income},
		Categories: core.Categories,
	}
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	view := newTransactionsView()
	if id := r.URL.Query().Get("created"); id != "" {
		view.Flash = "Transaction #" + sanitizeInput(id) + " saved."
	}

	page := ParsePageParams(r.URL.Query())
	env, err := s.backend.Transactions(r.Context(), page)
	view.Page = settle(env, err)

	s.render(w, r, NewPage(pageTransactions, view).Status(failureStatus(err)).NoStore())
}

// handleCreateTransaction sends the create form to the backend. On success
// it redirects to the list (303); otherwise the form is re-rendered with
// the entered values and a notice.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		s.render(w, r, BadRequestError("Malformed form submission."))
		return
	}

	view := newTransactionsView()
	form, payload := ParseTransactionForm(r.PostForm)
	view.Form = form

	status := http.StatusOK
	if !form.Valid() {
		view.Notice = "Please fix the highlighted fields."
		status = http.StatusUnprocessableEntity
	} else {
		env, err := s.backend.CreateTransaction(ctx, payload)
		switch {
		case err != nil:
			view.Notice = describeError(err)
			status = failureStatus(err)
			logger.WarnContext(ctx, "Create transaction failed",
				log.NewFields().WithOperation(log.OpCreateTransaction).WithError(err).
					WithTransaction(string(payload.Type), payload.Category, payload.Amount.StringFixed(2)).ToSlice()...)
		case !env.Success:
			view.Notice = env.MessageOr("The transaction was rejected.")
			status = http.StatusUnprocessableEntity
		default:
			logger.InfoContext(ctx, "Transaction created",
				log.NewFields().WithOperation(log.OpCreateTransaction).
					WithTransaction(string(env.Data.Type), env.Data.Category, env.Data.Amount.String()).ToSlice()...)
			http.Redirect(w, r, "/transactions?created="+strconv.FormatInt(env.Data.ID, 10), http.StatusSeeOther)
			return
		}
	}

	// Keep the list visible under the form.
	env, err := s.backend.Transactions(ctx, ParsePageParams(r.URL.Query()))
	view.Page = settle(env, err)

	s.render(w, r, NewPage(pageTransactions, view).Status(status).NoStore())
}

type transactionView struct {
	layout
	Transaction panel[core.Transaction]
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		s.render(w, r, NotFoundError("Transaction not found."))
		return
	}

	env, err := s.backend.Transaction(r.Context(), id)
	view := transactionView{
		layout:      layout{Title: "Transaction #" + strconv.FormatInt(id, 10), Active: pageTransactions},
		Transaction: settle(env, err),
	}

	status := failureStatus(err)
	if err == nil && !env.Success {
		status = http.StatusNotFound
	}
	s.render(w, r, NewPage(pageTransaction, view).Status(status).NoStore())
}
