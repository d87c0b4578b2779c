package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/docparse"
)

// walkState carries the crawl state owned by the coordinator goroutine.
// Workers receive only the immutable fields (config, limiter); run,
// frontier, and stats are mutated by the coordinator alone.
type walkState struct {
	run      *docparse.Run
	config   docparse.CrawlConfig
	host     string
	limiter  docparse.DomainLimiter
	filter   *docparse.URLFilter
	frontier *Frontier
	progress ProgressFunc
}

// walk runs the worker pool and coordinator loop until the frontier is
// exhausted or the context is canceled.
func (c *Crawler) walk(ctx context.Context, st *walkState) {
	workers := st.config.Workers
	if workers <= 0 {
		workers = docparse.DefaultWorkers
	}

	workCh := make(chan docparse.QueuedURL, workers)
	resultCh := make(chan crawlResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for queued := range workCh {
				result := c.processURL(ctx, st.config, st.limiter, queued)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close result channel when all workers are done
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	dispatched := 0 // URLs handed to workers
	pending := 0    // URLs currently being processed
	next := nextTask(st)

coordinatorLoop:
	for {
		if next == nil && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if next != nil && dispatched < maxCrawlPages {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case result := <-resultCh:
				pending--
				collect(st, result)
			}
		} else {
			// No more work to dispatch, just receive results
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case result, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				collect(st, result)
			}
		}

		if next == nil && dispatched < maxCrawlPages {
			next = nextTask(st)
		}
	}

	// Signal workers to stop and drain remaining results
	close(workCh)

	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case result, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			collect(st, result)
		case <-drainTimeout:
			break drainLoop
		}
	}
}

// nextTask pops frontier entries until one survives the depth and filter
// gates. Filtered URLs count as skipped; URLs beyond the depth bound are
// discarded.
func nextTask(st *walkState) *docparse.QueuedURL {
	for {
		queued, ok := st.frontier.Pop()
		if !ok {
			return nil
		}
		if queued.Depth > st.config.MaxDepth {
			continue
		}
		if !st.filter.Match(queued.URL) {
			st.run.Stats.Skipped++
			if st.progress != nil {
				st.progress(ProgressEvent{
					Type:  ProgressSkipped,
					URL:   queued.URL,
					Depth: queued.Depth,
				})
			}
			continue
		}
		return &queued
	}
}

// collect records a completed result: enqueue discovered links, append the
// page, update stats, and report progress. Called only from the coordinator
// goroutine.
func collect(st *walkState, result crawlResult) {
	page := result.page
	if page == nil {
		return
	}

	if st.config.FollowLinks && page.Depth < st.config.MaxDepth {
		for _, link := range page.Links {
			if !sameHost(link.URL, st.host) {
				continue
			}
			st.frontier.Push(docparse.QueuedURL{URL: link.URL, Depth: page.Depth + 1})
		}
	}

	st.run.Pages = append(st.run.Pages, page)
	st.run.Stats.Fetched++
	st.run.Stats.Links += len(page.Links)
	st.run.Stats.Bytes += result.bytes

	if page.Failed() {
		st.run.Stats.Failed++
		if st.progress != nil {
			st.progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: st.run.Stats.Fetched,
				URL:       page.URL,
				Depth:     page.Depth,
				Error:     result.err,
			})
		}
		return
	}

	st.run.Stats.Succeeded++
	if st.progress != nil {
		st.progress(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: st.run.Stats.Fetched,
			URL:       page.URL,
			Depth:     page.Depth,
		})
	}
}
