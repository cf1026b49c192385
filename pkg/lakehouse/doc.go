// Package lakehouse is a client for the lakehouse management API.
//
// Every call is described by an entry in a declarative operation table and
// executed by one generic request routine in pkg/transport/rest. Listing
// operations additionally carry a paging descriptor, which the NewXxxPager
// constructors turn into a pagination.Pager:
//
//	svc, err := lakehouse.New(cfg)
//	pager, err := lakehouse.NewIngestionJobsPager(svc, &lakehouse.ListIngestionJobsOptions{})
//	for pager.HasNext() {
//		jobs, err := pager.Next(ctx)
//		...
//	}
package lakehouse
