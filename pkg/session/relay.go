package session

// relayLoop pumps client audio frames to the transcription stream. Non-binary
// frames are ignored. Returns when either connection fails, which during
// normal teardown is just the client hanging up.
func (s *Session) relayLoop() {
	for {
		msgType, data, err := s.client.ReadMessage()
		if err != nil {
			s.logger.Debug("client read ended", "error", err)
			return
		}
		if msgType != binaryMessage {
			continue
		}
		if err := s.upstream.SendAudio(data); err != nil {
			s.logger.Warn("audio relay failed", "error", err)
			return
		}
	}
}
