package simplesftp

// withChannel connects a fresh session, opens an SFTP channel and runs fn
// with it. The channel is closed and then the session disconnected on every
// exit path, including a panic in fn. Errors from fn are returned unchanged;
// failures while acquiring the session or channel are ErrConnection.
func (c *Client) withChannel(fn func(ch Channel) error) error {
	addr := c.config.Address()

	c.logger.Debugf("Trying to connect to: %s", addr)
	session, err := NewSession(c.config)
	if err != nil {
		c.logger.Warnf("Error while creating SFTP session for %s: %v", addr, err)
		return newError(ErrConnection, "", err)
	}

	conn, err := c.transport.Connect(session)
	if err != nil {
		c.logger.Warnf("Error while connecting to: %s: %v", addr, err)
		return newError(ErrConnection, "", err)
	}
	defer func() {
		c.logger.Debugf("Trying to close session to %s", addr)
		if err := conn.Disconnect(); err != nil {
			c.logger.Warnf("Error while closing session to %s: %v", addr, err)
		}
	}()
	c.logger.Debugf("Connected to %s", addr)

	c.logger.Debugf("Trying to open SFTP channel")
	ch, err := conn.OpenChannel(ChannelSFTP)
	if err != nil {
		c.logger.Warnf("Error while opening SFTP channel to %s: %v", addr, err)
		return newError(ErrConnection, "", err)
	}
	defer func() {
		c.logger.Debugf("Trying to close SFTP channel")
		if err := ch.Close(); err != nil {
			c.logger.Warnf("Error while closing SFTP channel to %s: %v", addr, err)
		}
	}()
	c.logger.Debugf("Opened SFTP channel")

	return fn(ch)
}
