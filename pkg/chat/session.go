package chat

import "sync"

// Session holds the mutable per-session state: each party's configured
// display language, the message log, and the per-party input sequence
// counters used by input widgets to refresh their identity after a send.
//
// Language changes affect only messages created afterwards; stored messages
// keep the translation produced when they were ingested.
type Session struct {
	mu       sync.Mutex
	langs    map[Party]string
	counters map[Party]int
	store    *Store
}

func NewSession(partyALang, partyBLang string) *Session {
	return &Session{
		langs: map[Party]string{
			PartyA: partyALang,
			PartyB: partyBLang,
		},
		counters: map[Party]int{},
		store:    NewStore(),
	}
}

// Store returns the session's message log.
func (s *Session) Store() *Store {
	return s.store
}

// Lang returns the party's configured language code.
func (s *Session) Lang(p Party) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.langs[p]
}

// SetLang changes a party's configured language for future messages.
func (s *Session) SetLang(p Party, code string) {
	s.mu.Lock()
	s.langs[p] = code
	s.mu.Unlock()
}

// ReceiverLang returns the language the counterpart of sender is currently
// configured to read, resolved at ingestion time.
func (s *Session) ReceiverLang(sender Party) string {
	return s.Lang(sender.Other())
}

// NextInputSeq advances and returns the party's input sequence counter.
func (s *Session) NextInputSeq(p Party) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[p]++
	return s.counters[p]
}

// InputSeq returns the party's current input sequence counter.
func (s *Session) InputSeq(p Party) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[p]
}

// Clear empties the message log and resets both input counters.
func (s *Session) Clear() {
	s.store.Clear()
	s.mu.Lock()
	s.counters = map[Party]int{}
	s.mu.Unlock()
}
