package mock

import (
	"context"

	"github.com/fwojciec/ampdocs"
)

var _ ampdocs.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of ampdocs.URLFrontier.
type URLFrontier struct {
	PushFn func(link ampdocs.DiscoveredLink) bool
	PopFn  func() (ampdocs.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link ampdocs.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (ampdocs.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ ampdocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ampdocs.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
