package http

import (
	"context"
	"net/http"

	"fundboard/internal/api"
	"fundboard/internal/core"
)

// Form modal view data, one per resource. Edit modals are pre-filled from
// the current listing; there is no fetch-by-id on the fund API.

type bankFormData struct {
	Res  resourceView
	ID   int64
	Form core.BankForm
}

type currencyFormData struct {
	Res  resourceView
	ID   int64
	Form core.CurrencyForm
}

type categoryFormData struct {
	Res  resourceView
	ID   int64
	Form core.CategoryForm
}

type accountFormData struct {
	Res  resourceView
	ID   int64
	Form core.AccountForm
	Refs api.AccountRefs
}

type transactionFormData struct {
	Res      resourceView
	ID       int64
	Form     core.TransactionForm
	Accounts []core.Account
}

type userFormData struct {
	Res  resourceView
	ID   int64
	Form core.UserForm
}

// resourceSpecs binds the six managed resources to the API client.
func (s *Server) resourceSpecs() []resourceSpec {
	return []resourceSpec{
		s.banksSpec(),
		s.currenciesSpec(),
		s.categoriesSpec(),
		s.accountsSpec(),
		s.transactionsSpec(),
		s.usersSpec(),
	}
}

func (s *Server) banksSpec() resourceSpec {
	view := resourceView{Name: "banks", Singular: "Bank", Title: "Banks", Base: "/dashboard/banks"}
	return resourceSpec{
		resourceView: view,
		tableTmpl:    "banks_table.html",
		formTmpl:     "banks_form.html",
		load: func(ctx context.Context, token string) (interface{}, error) {
			return s.api.LoadBanks(ctx, token)
		},
		formData: func(ctx context.Context, token string, id int64) (interface{}, error) {
			data := bankFormData{Res: view, ID: id}
			if id > 0 {
				banks, err := s.api.LoadBanks(ctx, token)
				if err != nil {
					return nil, err
				}
				for _, b := range banks {
					if b.ID == id {
						data.Form = core.BankForm{Name: b.Name}
						break
					}
				}
			}
			return data, nil
		},
		parse: func(r *http.Request) (interface{}, error) {
			form := core.BankForm{Name: formValue(r, "name")}
			if err := form.Validate(); err != nil {
				return nil, err
			}
			return form, nil
		},
		create: func(ctx context.Context, token string, payload interface{}) error {
			return s.api.CreateBank(ctx, token, payload.(core.BankForm))
		},
		update: func(ctx context.Context, token string, id int64, payload interface{}) error {
			return s.api.UpdateBank(ctx, token, id, payload.(core.BankForm))
		},
		remove: func(ctx context.Context, token string, id int64) error {
			return s.api.DeleteBank(ctx, token, id)
		},
	}
}

func (s *Server) currenciesSpec() resourceSpec {
	view := resourceView{Name: "currencies", Singular: "Currency", Title: "Currencies", Base: "/dashboard/currencies"}
	return resourceSpec{
		resourceView: view,
		tableTmpl:    "currencies_table.html",
		formTmpl:     "currencies_form.html",
		load: func(ctx context.Context, token string) (interface{}, error) {
			return s.api.LoadCurrencies(ctx, token)
		},
		formData: func(ctx context.Context, token string, id int64) (interface{}, error) {
			data := currencyFormData{Res: view, ID: id}
			if id > 0 {
				currencies, err := s.api.LoadCurrencies(ctx, token)
				if err != nil {
					return nil, err
				}
				for _, c := range currencies {
					if c.ID == id {
						data.Form = core.CurrencyForm{Code: c.Code, Name: c.Name}
						break
					}
				}
			}
			return data, nil
		},
		parse: func(r *http.Request) (interface{}, error) {
			form := core.CurrencyForm{Code: formValue(r, "code"), Name: formValue(r, "name")}
			if err := form.Validate(); err != nil {
				return nil, err
			}
			return form, nil
		},
		create: func(ctx context.Context, token string, payload interface{}) error {
			return s.api.CreateCurrency(ctx, token, payload.(core.CurrencyForm))
		},
		update: func(ctx context.Context, token string, id int64, payload interface{}) error {
			return s.api.UpdateCurrency(ctx, token, id, payload.(core.CurrencyForm))
		},
		remove: func(ctx context.Context, token string, id int64) error {
			return s.api.DeleteCurrency(ctx, token, id)
		},
	}
}

func (s *Server) categoriesSpec() resourceSpec {
	view := resourceView{Name: "categories", Singular: "Category", Title: "Categories", Base: "/dashboard/categories"}
	return resourceSpec{
		resourceView: view,
		tableTmpl:    "categories_table.html",
		formTmpl:     "categories_form.html",
		load: func(ctx context.Context, token string) (interface{}, error) {
			return s.api.LoadCategories(ctx, token)
		},
		formData: func(ctx context.Context, token string, id int64) (interface{}, error) {
			data := categoryFormData{Res: view, ID: id}
			if id > 0 {
				categories, err := s.api.LoadCategories(ctx, token)
				if err != nil {
					return nil, err
				}
				for _, c := range categories {
					if c.ID == id {
						data.Form = core.CategoryForm{Name: c.Name}
						break
					}
				}
			}
			return data, nil
		},
		parse: func(r *http.Request) (interface{}, error) {
			form := core.CategoryForm{Name: formValue(r, "name")}
			if err := form.Validate(); err != nil {
				return nil, err
			}
			return form, nil
		},
		create: func(ctx context.Context, token string, payload interface{}) error {
			return s.api.CreateCategory(ctx, token, payload.(core.CategoryForm))
		},
		update: func(ctx context.Context, token string, id int64, payload interface{}) error {
			return s.api.UpdateCategory(ctx, token, id, payload.(core.CategoryForm))
		},
		remove: func(ctx context.Context, token string, id int64) error {
			return s.api.DeleteCategory(ctx, token, id)
		},
	}
}

func (s *Server) accountsSpec() resourceSpec {
	view := resourceView{Name: "accounts", Singular: "Account", Title: "Accounts", Base: "/dashboard/accounts"}
	return resourceSpec{
		resourceView: view,
		tableTmpl:    "accounts_table.html",
		formTmpl:     "accounts_form.html",
		load: func(ctx context.Context, token string) (interface{}, error) {
			return s.api.LoadAccounts(ctx, token)
		},
		formData: func(ctx context.Context, token string, id int64) (interface{}, error) {
			// The form always needs the reference dropdowns, loaded fresh
			// for this screen.
			refs, err := s.api.FetchAccountRefs(ctx, token)
			if err != nil {
				return nil, err
			}
			data := accountFormData{Res: view, ID: id, Refs: refs}
			if id > 0 {
				accounts, err := s.api.LoadAccounts(ctx, token)
				if err != nil {
					return nil, err
				}
				for _, a := range accounts {
					if a.ID == id {
						data.Form = core.AccountForm{
							Name:          a.Name,
							AccountNumber: a.AccountNumber,
							BankID:        a.Bank.ID,
							CurrencyID:    a.Currency.ID,
							CategoryID:    a.Category.ID,
						}
						break
					}
				}
			}
			return data, nil
		},
		parse: func(r *http.Request) (interface{}, error) {
			form := core.AccountForm{
				Name:          formValue(r, "name"),
				AccountNumber: formValue(r, "accountNumber"),
				BankID:        formInt64(r, "bankId"),
				CurrencyID:    formInt64(r, "currencyId"),
				CategoryID:    formInt64(r, "categoryId"),
			}
			if err := form.Validate(); err != nil {
				return nil, err
			}
			return form, nil
		},
		create: func(ctx context.Context, token string, payload interface{}) error {
			return s.api.CreateAccount(ctx, token, payload.(core.AccountForm))
		},
		update: func(ctx context.Context, token string, id int64, payload interface{}) error {
			return s.api.UpdateAccount(ctx, token, id, payload.(core.AccountForm))
		},
		remove: func(ctx context.Context, token string, id int64) error {
			return s.api.DeleteAccount(ctx, token, id)
		},
	}
}

func (s *Server) transactionsSpec() resourceSpec {
	view := resourceView{Name: "transactions", Singular: "Transaction", Title: "Transactions", Base: "/dashboard/transactions", Searchable: true}
	return resourceSpec{
		resourceView: view,
		tableTmpl:    "transactions_table.html",
		formTmpl:     "transactions_form.html",
		load: func(ctx context.Context, token string) (interface{}, error) {
			return s.api.LoadTransactions(ctx, token)
		},
		formData: func(ctx context.Context, token string, id int64) (interface{}, error) {
			accounts, err := s.api.LoadAccounts(ctx, token)
			if err != nil {
				return nil, err
			}
			data := transactionFormData{Res: view, ID: id, Accounts: accounts}
			if id > 0 {
				transactions, err := s.api.LoadTransactions(ctx, token)
				if err != nil {
					return nil, err
				}
				for _, t := range transactions {
					if t.ID == id {
						data.Form = core.TransactionForm{
							AccountID:   t.Account.ID,
							Type:        t.Type,
							Amount:      t.Amount,
							Description: t.Description,
						}
						break
					}
				}
			}
			return data, nil
		},
		parse: func(r *http.Request) (interface{}, error) {
			amount, err := core.ParseMoney(formValue(r, "amount"))
			if err != nil {
				return nil, core.ErrInvalidAmount
			}
			form := core.TransactionForm{
				AccountID:   formInt64(r, "accountId"),
				Type:        formValue(r, "type"),
				Amount:      amount,
				Description: formValue(r, "description"),
			}
			if err := form.Validate(); err != nil {
				return nil, err
			}
			return form, nil
		},
		create: func(ctx context.Context, token string, payload interface{}) error {
			return s.api.CreateTransaction(ctx, token, payload.(core.TransactionForm))
		},
		update: func(ctx context.Context, token string, id int64, payload interface{}) error {
			return s.api.UpdateTransaction(ctx, token, id, payload.(core.TransactionForm))
		},
		remove: func(ctx context.Context, token string, id int64) error {
			return s.api.DeleteTransaction(ctx, token, id)
		},
	}
}

func (s *Server) usersSpec() resourceSpec {
	view := resourceView{Name: "users", Singular: "User", Title: "Users", Base: "/dashboard/users"}
	return resourceSpec{
		resourceView: view,
		tableTmpl:    "users_table.html",
		formTmpl:     "users_form.html",
		load: func(ctx context.Context, token string) (interface{}, error) {
			return s.api.LoadUsers(ctx, token)
		},
		formData: func(ctx context.Context, token string, id int64) (interface{}, error) {
			data := userFormData{Res: view, ID: id}
			if id > 0 {
				users, err := s.api.LoadUsers(ctx, token)
				if err != nil {
					return nil, err
				}
				for _, u := range users {
					if u.ID == id {
						data.Form = core.UserForm{Name: u.Name, Email: u.Email, Role: u.Role}
						break
					}
				}
			}
			return data, nil
		},
		parse: func(r *http.Request) (interface{}, error) {
			form := core.UserForm{
				Name:     formValue(r, "name"),
				Email:    formValue(r, "email"),
				Role:     core.Role(formValue(r, "role")),
				Password: r.FormValue("password"),
			}
			// Only a create requires a password; edits leave it blank to
			// keep the current one.
			if formInt64(r, "id") > 0 {
				if err := form.Validate(); err != nil {
					return nil, err
				}
			} else if err := form.ValidateCreate(); err != nil {
				return nil, err
			}
			return form, nil
		},
		create: func(ctx context.Context, token string, payload interface{}) error {
			return s.api.CreateUser(ctx, token, payload.(core.UserForm))
		},
		update: func(ctx context.Context, token string, id int64, payload interface{}) error {
			return s.api.UpdateUser(ctx, token, id, payload.(core.UserForm))
		},
		remove: func(ctx context.Context, token string, id int64) error {
			return s.api.DeleteUser(ctx, token, id)
		},
	}
}
