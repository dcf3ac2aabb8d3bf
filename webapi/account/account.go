package account

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	accountsvc "github.com/vagnerwentz/bankapi/pkg/service/account"
	transactionsvc "github.com/vagnerwentz/bankapi/pkg/service/transaction"
	"github.com/vagnerwentz/bankapi/webapi/common"
)

// Routes registers HTTP routes for account-related operations.
//
// Routes:
//   - GET    /account                       : List every account.
//   - GET    /account/:number               : Fetch one account by its number.
//   - GET    /account/:number/transactions  : List transactions touching the account.
//   - POST   /account                       : Open a new account with zero balance.
//   - PUT    /account/:id                   : Overwrite an account's fields.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, txSvc *transactionsvc.Service) {
	app.Get("/account", ListAccounts(accountSvc))
	app.Get("/account/:number", GetAccount(accountSvc))
	app.Get("/account/:number/transactions", GetTransactions(txSvc))
	app.Post("/account", CreateAccount(accountSvc))
	app.Put("/account/:id", UpdateAccount(accountSvc))
}

// ListAccounts returns a Fiber handler listing every account.
func ListAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accs, err := accountSvc.GetAll(c.UserContext())
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		dtos := make([]*AccountDTO, 0, len(accs))
		for _, a := range accs {
			dtos = append(dtos, ToAccountDTO(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", dtos)
	}
}

// GetAccount returns a Fiber handler fetching one account by number.
// A missing account is a 404.
func GetAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, ok, err := parseNumber(c)
		if !ok {
			return err
		}
		acc, found, err := accountSvc.GetByNumber(c.UserContext(), number)
		if err != nil {
			log.Errorf("Failed to fetch account %d: %v", number, err)
			return common.ProblemDetailsJSON(c, "Failed to fetch account", err)
		}
		if !found {
			return common.ProblemDetailsJSON(c, "Account not found", account.ErrAccountNotFound)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountDTO(acc))
	}
}

// GetTransactions returns a Fiber handler listing the transactions of an
// account, newest first.
func GetTransactions(txSvc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, ok, err := parseNumber(c)
		if !ok {
			return err
		}
		txs, err := txSvc.History(c.UserContext(), number)
		if err != nil {
			log.Errorf("Failed to list transactions for account %d: %v", number, err)
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		dtos := make([]*TransactionDTO, 0, len(txs))
		for _, t := range txs {
			dtos = append(dtos, ToTransactionDTO(t))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", dtos)
	}
}

// CreateAccount returns a Fiber handler opening a new account. Any balance in
// the body is ignored.
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Create(c.UserContext(), input.toCreate())
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		log.Infof("Account created: %d", a.Number)
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDTO(a))
	}
}

// UpdateAccount returns a Fiber handler overwriting the account with the given ID.
func UpdateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[AccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Update(c.UserContext(), id, input.toUpdate())
		if err != nil {
			log.Errorf("Failed to update account %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", ToAccountDTO(a))
	}
}

// parseNumber reads the :number route param. When ok is false the 400
// response is already written and err is the write result.
func parseNumber(c *fiber.Ctx) (number int64, ok bool, err error) {
	number, perr := strconv.ParseInt(c.Params("number"), 10, 64)
	if perr != nil {
		return 0, false, common.ProblemDetailsJSON(c, "Invalid account number", perr, "Account number must be an integer", fiber.StatusBadRequest)
	}
	return number, true, nil
}
