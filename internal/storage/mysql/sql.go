package mysql

const findHotelSQL = `
SELECT hotel_id FROM hotels WHERE LOWER(name) = LOWER(?)
`

const insertHotelSQL = `
INSERT INTO hotels (name, location, chain_id)
VALUES (?, ?, ?)
`

// LAST_INSERT_ID(review_id) makes the upsert return the surviving row id in
// one round trip, for inserts and updates alike. The unique key is the
// natural identity (reviewer_name, created_at, hotel_id).
const upsertReviewSQL = `
INSERT INTO guest_reviews
  (created_at, reviewer_name, reviewer_country, rating, review_headline,
   review_positive, review_negative, hotel_response, hotel_id, source_id,
   review_lang, is_genius, reservation_id, reply_last_modified)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  review_id           = LAST_INSERT_ID(review_id),
  reviewer_country    = VALUES(reviewer_country),
  rating              = VALUES(rating),
  review_headline     = VALUES(review_headline),
  review_positive     = VALUES(review_positive),
  review_negative     = VALUES(review_negative),
  hotel_response      = VALUES(hotel_response),
  source_id           = VALUES(source_id),
  review_lang         = VALUES(review_lang),
  is_genius           = VALUES(is_genius),
  reservation_id      = VALUES(reservation_id),
  reply_last_modified = VALUES(reply_last_modified)
`

const upsertInsightSQL = `
INSERT INTO insights
  (review_id, professional_tone, language_appropriate, addressed_positive,
   addressed_negative, named_guest, named_hotelier, kind, concise, grateful,
   invites_return, correct_syntax, personal, calculate_score)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  professional_tone    = VALUES(professional_tone),
  language_appropriate = VALUES(language_appropriate),
  addressed_positive   = VALUES(addressed_positive),
  addressed_negative   = VALUES(addressed_negative),
  named_guest          = VALUES(named_guest),
  named_hotelier       = VALUES(named_hotelier),
  kind                 = VALUES(kind),
  concise              = VALUES(concise),
  grateful             = VALUES(grateful),
  invites_return       = VALUES(invites_return),
  correct_syntax       = VALUES(correct_syntax),
  personal             = VALUES(personal),
  calculate_score      = VALUES(calculate_score),
  scored_at            = CURRENT_TIMESTAMP
`

// Candidates: reply present, no insight row yet. Re-queried at the start of
// every sweep; a review that failed scoring is simply selected again.
const listUnscoredSQL = `
SELECT gr.review_id, gr.review_headline, gr.review_positive,
       gr.review_negative, gr.hotel_response, gr.review_lang
FROM guest_reviews gr
LEFT JOIN insights i ON i.review_id = gr.review_id
WHERE gr.hotel_response IS NOT NULL
  AND i.review_id IS NULL
ORDER BY gr.review_id
`

const getCandidateSQL = `
SELECT gr.review_id, gr.review_headline, gr.review_positive,
       gr.review_negative, gr.hotel_response, gr.review_lang
FROM guest_reviews gr
WHERE gr.review_id = ? AND gr.hotel_response IS NOT NULL
`

const listReviewsPrefix = `
SELECT
  gr.review_id,
  gr.hotel_id,
  h.name        AS hotel_name,
  hc.chain_name AS hotel_chain,
  gr.source_id,
  gr.created_at,
  gr.reviewer_name,
  gr.reviewer_country,
  gr.rating,
  CONCAT_WS(' ', gr.review_headline, gr.review_positive, gr.review_negative) AS review_text,
  gr.hotel_response,
  gr.review_lang,
  i.calculate_score
FROM guest_reviews gr
JOIN hotels        h  ON gr.hotel_id  = h.hotel_id
JOIN hotel_chains  hc ON h.chain_id   = hc.chain_id
LEFT JOIN insights i  ON gr.review_id = i.review_id
`

const listReviewsSuffix = `
ORDER BY gr.created_at DESC, gr.review_id DESC
LIMIT ?
`

const qualityOverTimePrefix = `
SELECT
  DATE_FORMAT(gr.created_at, '%Y-%m-%d') AS review_date,
  ROUND(AVG(i.calculate_score), 2) AS avg_quality
FROM guest_reviews gr
JOIN hotels   h ON gr.hotel_id  = h.hotel_id
JOIN insights i ON gr.review_id = i.review_id
`

const qualityOverTimeSuffix = `
GROUP BY review_date
ORDER BY review_date
`
