// Package lending contains the core bookkeeping of a library:
// books and patrons in a Catalog, loans in a Ledger, and the late-return fine policy.
//
// The Ledger notifies patrons through the Notifier capability. Delivery is not part of this package;
// see the notify package for console, log, Telegram and outbox sinks.
//
// Failure signals are plain return values, never errors:
//   - RequestLoan returns false when the book is not available
//   - CloseLoan returns NoOpenLoan (-1) when no matching open loan exists
//   - Catalog lookups return (nil, false) on a miss
//
// Common usage pattern:
//
//	catalog := lending.NewCatalog()
//	book := lending.BuildBook("Clean Code", "Robert C. Martin", "978-0132350884")
//	patron := lending.BuildPatron("Jane Doe", 1)
//	catalog.AddBook(book)
//	catalog.AddPatron(patron)
//
//	ledger, err := lending.NewLedger(emailNotifier, smsNotifier)
//	if err != nil {
//		// handle error
//	}
//
//	if ok := ledger.RequestLoan(ctx, book, patron, 7); !ok {
//		// book is not available
//	}
//
//	fine := ledger.CloseLoan(ctx, book, patron)
//	if fine == lending.NoOpenLoan {
//		// nothing to return
//	}
//
// Catalog and Ledger are not safe for concurrent use.
package lending
