package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"archivewit/internal/archive"
)

// NewsNetworks returns every network ordered by name.
func (s *Store) NewsNetworks(ctx context.Context) ([]archive.NewsNetwork, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM news_networks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list news networks: %w", err)
	}
	defer rows.Close()

	var networks []archive.NewsNetwork
	for rows.Next() {
		var n archive.NewsNetwork
		if err := rows.Scan(&n.ID, &n.Name, &n.Description); err != nil {
			return nil, fmt.Errorf("scan news network: %w", err)
		}
		networks = append(networks, n)
	}
	return networks, rows.Err()
}

// NewsNetwork fetches one network.
func (s *Store) NewsNetwork(ctx context.Context, id int64) (archive.NewsNetwork, error) {
	return newsNetwork(ctx, s.db, id)
}

func newsNetwork(ctx context.Context, q querier, id int64) (archive.NewsNetwork, error) {
	var n archive.NewsNetwork
	err := q.QueryRowContext(ctx, `SELECT id, name, description FROM news_networks WHERE id = ?`, id).
		Scan(&n.ID, &n.Name, &n.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return archive.NewsNetwork{}, fmt.Errorf("news network %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return archive.NewsNetwork{}, fmt.Errorf("get news network: %w", err)
	}
	return n, nil
}

// SaveNewsNetwork inserts a new network (ID 0) or updates an existing one.
func (s *Store) SaveNewsNetwork(ctx context.Context, n archive.NewsNetwork) (archive.NewsNetwork, error) {
	if n.ID == 0 {
		res, err := s.db.ExecContext(ctx, `INSERT INTO news_networks (name, description) VALUES (?, ?)`, n.Name, n.Description)
		if err != nil {
			return archive.NewsNetwork{}, fmt.Errorf("insert news network: %w", err)
		}
		if n.ID, err = lastInsertID(res, "news network"); err != nil {
			return archive.NewsNetwork{}, err
		}
		return n, nil
	}
	res, err := s.db.ExecContext(ctx, `UPDATE news_networks SET name = ?, description = ? WHERE id = ?`, n.Name, n.Description, n.ID)
	if err != nil {
		return archive.NewsNetwork{}, fmt.Errorf("update news network: %w", err)
	}
	return n, rowsAffected(res, "news network", n.ID)
}

const affiliateColumns = `a.id, a.name, a.description, a.region, n.id, n.name, n.description`

func scanAffiliate(scanner interface{ Scan(dest ...any) error }) (archive.NewsAffiliate, error) {
	var a archive.NewsAffiliate
	err := scanner.Scan(&a.ID, &a.Name, &a.Description, &a.Region, &a.Network.ID, &a.Network.Name, &a.Network.Description)
	return a, err
}

// NewsAffiliates returns every affiliate with its network, ordered by name.
func (s *Store) NewsAffiliates(ctx context.Context) ([]archive.NewsAffiliate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+affiliateColumns+`
        FROM news_affiliates a JOIN news_networks n ON n.id = a.news_network_id
        ORDER BY a.name`)
	if err != nil {
		return nil, fmt.Errorf("list news affiliates: %w", err)
	}
	defer rows.Close()

	var affiliates []archive.NewsAffiliate
	for rows.Next() {
		a, err := scanAffiliate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news affiliate: %w", err)
		}
		affiliates = append(affiliates, a)
	}
	return affiliates, rows.Err()
}

// NewsAffiliate fetches one affiliate.
func (s *Store) NewsAffiliate(ctx context.Context, id int64) (archive.NewsAffiliate, error) {
	return newsAffiliate(ctx, s.db, id)
}

func newsAffiliate(ctx context.Context, q querier, id int64) (archive.NewsAffiliate, error) {
	row := q.QueryRowContext(ctx, `SELECT `+affiliateColumns+`
        FROM news_affiliates a JOIN news_networks n ON n.id = a.news_network_id
        WHERE a.id = ?`, id)
	a, err := scanAffiliate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return archive.NewsAffiliate{}, fmt.Errorf("news affiliate %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return archive.NewsAffiliate{}, fmt.Errorf("get news affiliate: %w", err)
	}
	return a, nil
}

// SaveNewsAffiliate inserts or updates an affiliate. Its network must already
// exist.
func (s *Store) SaveNewsAffiliate(ctx context.Context, a archive.NewsAffiliate) (archive.NewsAffiliate, error) {
	if a.Network.ID == 0 {
		return archive.NewsAffiliate{}, errors.New("save news affiliate: network has no identity")
	}
	if a.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO news_affiliates (name, description, region, news_network_id) VALUES (?, ?, ?, ?)`,
			a.Name, a.Description, a.Region, a.Network.ID)
		if err != nil {
			return archive.NewsAffiliate{}, fmt.Errorf("insert news affiliate: %w", err)
		}
		if a.ID, err = lastInsertID(res, "news affiliate"); err != nil {
			return archive.NewsAffiliate{}, err
		}
		return a, nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE news_affiliates SET name = ?, description = ?, region = ?, news_network_id = ? WHERE id = ?`,
		a.Name, a.Description, a.Region, a.Network.ID, a.ID)
	if err != nil {
		return archive.NewsAffiliate{}, fmt.Errorf("update news affiliate: %w", err)
	}
	return a, rowsAffected(res, "news affiliate", a.ID)
}

const broadcastQuery = `SELECT b.id, b.broadcast_date, b.description, b.news_network_id, b.news_affiliate_id
    FROM news_broadcasts b
    LEFT JOIN news_networks n ON n.id = b.news_network_id
    LEFT JOIN news_affiliates a ON a.id = b.news_affiliate_id`

type broadcastRow struct {
	broadcast   archive.NewsBroadcast
	networkID   sql.NullInt64
	affiliateID sql.NullInt64
}

func scanBroadcastRows(rows *sql.Rows) ([]broadcastRow, error) {
	defer rows.Close()
	var out []broadcastRow
	for rows.Next() {
		var (
			r    broadcastRow
			date sql.NullString
		)
		if err := rows.Scan(&r.broadcast.ID, &date, &r.broadcast.Description, &r.networkID, &r.affiliateID); err != nil {
			return nil, fmt.Errorf("scan news broadcast: %w", err)
		}
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		r.broadcast.Date = d
		out = append(out, r)
	}
	return out, rows.Err()
}

// attachBroadcastSources resolves the network or affiliate of each row. Rows are read fully
// before resolving because the store runs on a single connection.
func attachBroadcastSources(ctx context.Context, q querier, rows []broadcastRow) ([]archive.NewsBroadcast, error) {
	broadcasts := make([]archive.NewsBroadcast, 0, len(rows))
	for _, r := range rows {
		b := r.broadcast
		if r.networkID.Valid {
			n, err := newsNetwork(ctx, q, r.networkID.Int64)
			if err != nil {
				return nil, err
			}
			b.Network = &n
		}
		if r.affiliateID.Valid {
			a, err := newsAffiliate(ctx, q, r.affiliateID.Int64)
			if err != nil {
				return nil, err
			}
			b.Affiliate = &a
		}
		broadcasts = append(broadcasts, b)
	}
	return broadcasts, nil
}

// NewsBroadcasts returns every broadcast ordered by date, then source name.
func (s *Store) NewsBroadcasts(ctx context.Context) ([]archive.NewsBroadcast, error) {
	rows, err := s.db.QueryContext(ctx, broadcastQuery+` ORDER BY b.broadcast_date, COALESCE(n.name, a.name)`)
	if err != nil {
		return nil, fmt.Errorf("list news broadcasts: %w", err)
	}
	scanned, err := scanBroadcastRows(rows)
	if err != nil {
		return nil, err
	}
	return attachBroadcastSources(ctx, s.db, scanned)
}

// NewsBroadcast fetches one broadcast.
func (s *Store) NewsBroadcast(ctx context.Context, id int64) (archive.NewsBroadcast, error) {
	return newsBroadcast(ctx, s.db, id)
}

func newsBroadcast(ctx context.Context, q querier, id int64) (archive.NewsBroadcast, error) {
	rows, err := q.QueryContext(ctx, broadcastQuery+` WHERE b.id = ?`, id)
	if err != nil {
		return archive.NewsBroadcast{}, fmt.Errorf("get news broadcast: %w", err)
	}
	scanned, err := scanBroadcastRows(rows)
	if err != nil {
		return archive.NewsBroadcast{}, err
	}
	if len(scanned) == 0 {
		return archive.NewsBroadcast{}, fmt.Errorf("news broadcast %d: %w", id, ErrNotFound)
	}
	broadcasts, err := attachBroadcastSources(ctx, q, scanned)
	if err != nil {
		return archive.NewsBroadcast{}, err
	}
	return broadcasts[0], nil
}

// SaveNewsBroadcast inserts or updates a broadcast. Exactly one of Network and
// Affiliate must be set and already exist. Broadcasts are picked by their
// display label, so no two may share a source name and date.
func (s *Store) SaveNewsBroadcast(ctx context.Context, b archive.NewsBroadcast) (archive.NewsBroadcast, error) {
	var networkID, affiliateID any
	switch {
	case b.Network != nil && b.Affiliate != nil:
		return archive.NewsBroadcast{}, errors.New("save news broadcast: both network and affiliate set")
	case b.Network != nil:
		networkID = b.Network.ID
	case b.Affiliate != nil:
		affiliateID = b.Affiliate.ID
	default:
		return archive.NewsBroadcast{}, errors.New("save news broadcast: neither network nor affiliate set")
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var clash int64
		err := tx.QueryRowContext(ctx, `
			SELECT b.id
			FROM news_broadcasts b
			LEFT JOIN news_networks n ON n.id = b.news_network_id
			LEFT JOIN news_affiliates a ON a.id = b.news_affiliate_id
			WHERE b.broadcast_date IS ?
			  AND b.id <> ?
			  AND COALESCE(n.name, a.name) = COALESCE(
			        (SELECT name FROM news_networks WHERE id = ?),
			        (SELECT name FROM news_affiliates WHERE id = ?))
			LIMIT 1`,
			nullableDate(b.Date), b.ID, networkID, affiliateID).Scan(&clash)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s is already broadcast %d", ErrDuplicateBroadcast, b, clash)
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("check news broadcast label: %w", err)
		}

		if b.ID == 0 {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO news_broadcasts (broadcast_date, description, news_network_id, news_affiliate_id) VALUES (?, ?, ?, ?)`,
				nullableDate(b.Date), b.Description, networkID, affiliateID)
			if err != nil {
				return fmt.Errorf("insert news broadcast: %w", err)
			}
			b.ID, err = lastInsertID(res, "news broadcast")
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE news_broadcasts SET broadcast_date = ?, description = ?, news_network_id = ?, news_affiliate_id = ? WHERE id = ?`,
			nullableDate(b.Date), b.Description, networkID, affiliateID, b.ID)
		if err != nil {
			return fmt.Errorf("update news broadcast: %w", err)
		}
		return rowsAffected(res, "news broadcast", b.ID)
	})
	if err != nil {
		return archive.NewsBroadcast{}, err
	}
	return b, nil
}
