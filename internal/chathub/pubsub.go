package chathub

// StartPubSubListener starts a goroutine that forwards events from the
// shared Redis subscription into the hub's routing loop. Every server
// instance sees every published event and routes it to whichever of the
// participants' connections it happens to hold.
func (m *ManagerService) StartPubSubListener() {
	events := m.Storage.SubscribeEvents()

	go func() {
		for event := range events {
			m.PubSubCh <- event
		}
	}()
}
